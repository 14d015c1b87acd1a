package dto

type TrendingQuery struct {
	Platform string `form:"platform" binding:"required"`
	Region   string `form:"region"`
	Limit    int    `form:"limit" binding:"omitempty,min=1,max=100"`
}
