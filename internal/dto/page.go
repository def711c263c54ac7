package dto

import "shareit/internal/model"

const (
	DefaultFrom = 0
	DefaultSize = 10
)

// PageQuery is the from/size pair accepted by list endpoints.
type PageQuery struct {
	From int `query:"from" validate:"min=0"`
	Size int `query:"size" validate:"min=1"`
}

func (q PageQuery) Page() model.Page {
	return model.Page{From: q.From, Size: q.Size}
}
