package handler

import (
	"Fanscope/internal/api/dto"
	"Fanscope/internal/pkg/response"
	"Fanscope/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type AccountHandler struct {
	accountSvc service.AccountService
}

func NewAccountHandler(accountSvc service.AccountService) *AccountHandler {
	return &AccountHandler{
		accountSvc: accountSvc,
	}
}

func (s *AccountHandler) Bind(c *gin.Context) {
	var req dto.BindAccountReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	userID := c.GetUint64("user_id")
	account, err := s.accountSvc.BindAccount(c.Request.Context(), userID, req.Platform, req.Identifier)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, account)
}

func (s *AccountHandler) List(c *gin.Context) {
	userID := c.GetUint64("user_id")
	accounts, err := s.accountSvc.ListAccounts(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, accounts)
}

func (s *AccountHandler) Unbind(c *gin.Context) {
	accountID, err := strconv.ParseUint(c.Param("account_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	userID := c.GetUint64("user_id")
	if err := s.accountSvc.UnbindAccount(c.Request.Context(), userID, accountID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *AccountHandler) UploadAvatar(c *gin.Context) {
	accountID, err := strconv.ParseUint(c.Param("account_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	reader, err := file.Open()
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	defer func() { _ = reader.Close() }()

	userID := c.GetUint64("user_id")
	avatarURL, err := s.accountSvc.UploadAvatar(c.Request.Context(), userID, accountID, reader)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"avatar_url": avatarURL})
}
