package calendar

const (
	DefaultPageSize = 20
	MaxPageSize     = 200
)

// Page описывает одну страницу элементов.
type Page[T any] struct {
	Items    []T // элементы на текущей странице
	Page     int // номер страницы (с 1)
	PageSize int // количество элементов на странице
	HasNext  bool
	HasPrev  bool
	Total    int64 // общее количество элементов
}

// PageBounds нормализует номер и размер страницы и возвращает limit/offset для запроса.
// page нумеруется с 1. При некорректных значениях используются дефолты.
func PageBounds(page, pageSize int) (normPage, limit, offset int) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	if page <= 0 {
		page = 1
	}
	return page, pageSize, (page - 1) * pageSize
}

// NewPage собирает страницу из уже выбранных элементов и общего количества.
func NewPage[T any](items []T, total int64, page, pageSize int) Page[T] {
	page, pageSize, offset := PageBounds(page, pageSize)
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:    items,
		Page:     page,
		PageSize: pageSize,
		HasPrev:  page > 1,
		HasNext:  int64(offset+len(items)) < total,
		Total:    total,
	}
}

// MapPage преобразует элементы страницы, сохраняя метаданные.
func MapPage[T, R any](p Page[T], fn func(T) R) Page[R] {
	out := make([]R, 0, len(p.Items))
	for _, it := range p.Items {
		out = append(out, fn(it))
	}
	return Page[R]{
		Items:    out,
		Page:     p.Page,
		PageSize: p.PageSize,
		HasNext:  p.HasNext,
		HasPrev:  p.HasPrev,
		Total:    p.Total,
	}
}
