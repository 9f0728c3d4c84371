package gormsift

const (
	DefaultOrderingParam = "order_by"
	DefaultSearchParam   = "search"
	DefaultOrdering      = "id"
)

type Options struct {
	// OrderingParam is the reserved key carrying "[+|-]field".
	OrderingParam string
	// SearchParam is the reserved key carrying the free-text query.
	SearchParam string
	// DefaultOrdering is the field ordered by when OrderingParam is absent.
	DefaultOrdering string
}

type Option func(*Options)

func WithOrderingParam(name string) Option {
	return func(o *Options) { o.OrderingParam = name }
}

func WithSearchParam(name string) Option {
	return func(o *Options) { o.SearchParam = name }
}

func WithDefaultOrdering(field string) Option {
	return func(o *Options) { o.DefaultOrdering = field }
}
