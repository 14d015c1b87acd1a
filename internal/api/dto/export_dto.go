package dto

type ExportReq struct {
	Platform   string `json:"platform" binding:"required"`
	ExternalID string `json:"external_id" binding:"required"`
	Format     string `json:"format" binding:"required,oneof=csv json"`
}
