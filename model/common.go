package model

type CommonParam struct {
	Operator string
}

type CommonParamInterface interface {
	SetOperator(op string)
}

func (p *CommonParam) SetOperator(op string) {
	p.Operator = op
}

type PageParam struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// Offset 分页偏移量
func (p PageParam) Offset() int {
	return (p.Page - 1) * p.PageSize
}
