package service

import (
	"Fanscope/internal/api/dto"
	"Fanscope/internal/model"
	"Fanscope/internal/pkg/security"
	"Fanscope/internal/repository"
	"context"
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/jinzhu/copier"
)

type UserService interface {
	Register(ctx context.Context, req *dto.RegisterReq) (*dto.UserInfo, error)
	Login(ctx context.Context, req *dto.LoginReq) (*dto.LoginResp, error)
	GetUserInfo(ctx context.Context, userID uint64) (*dto.UserInfo, error)
}

type userServiceImpl struct {
	userRepo repository.UserRepo
}

func NewUserService(userRepo repository.UserRepo) UserService {
	return &userServiceImpl{userRepo: userRepo}
}

func (s *userServiceImpl) Register(ctx context.Context, req *dto.RegisterReq) (*dto.UserInfo, error) {
	exist, err := s.userRepo.GetUserByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		return nil, ErrUserUsernameExist
	}

	exist, err = s.userRepo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		return nil, ErrUserEmailExist
	}

	hashed, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username: req.Username,
		Email:    req.Email,
		Password: hashed,
	}
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		// 预检查有并发窗口，唯一索引冲突兜底
		if isDuplicateError(err) {
			return nil, ErrUserUsernameExist
		}
		return nil, err
	}

	info := &dto.UserInfo{}
	_ = copier.Copy(info, user)
	return info, nil
}

func isDuplicateError(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return true
	}
	return false
}

func (s *userServiceImpl) Login(ctx context.Context, req *dto.LoginReq) (*dto.LoginResp, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if user.IsBan {
		return nil, ErrUserBan
	}

	if err := security.CheckPasswordHash(req.Password, user.Password); err != nil {
		return nil, ErrPasswordIncorrect
	}

	token, err := security.GenerateToken(user.ID, []string{"user"})
	if err != nil {
		return nil, err
	}

	resp := &dto.LoginResp{Token: token}
	_ = copier.Copy(&resp.User, user)
	return resp, nil
}

func (s *userServiceImpl) GetUserInfo(ctx context.Context, userID uint64) (*dto.UserInfo, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	info := &dto.UserInfo{}
	_ = copier.Copy(info, user)
	return info, nil
}
