package dto

type BindAccountReq struct {
	Platform   string `json:"platform" binding:"required"`
	Identifier string `json:"identifier" binding:"required"`
}
