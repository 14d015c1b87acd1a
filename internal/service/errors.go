package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	NotFound            = 404
	InternalServerError = 500
)

var (
	ErrParamInvalid         = errors.New("参数错误")
	ErrUserNotFound         = errors.New("用户不存在")
	ErrUserBan              = errors.New("用户已被封禁")
	ErrUserUsernameExist    = errors.New("用户名已存在")
	ErrUserEmailExist       = errors.New("邮箱已注册")
	ErrPasswordIncorrect    = errors.New("密码错误")
	ErrPlatformNotSupported = errors.New("不支持的平台")
	ErrAccountNotFound      = errors.New("平台账号未绑定")
	ErrExportFormatInvalid  = errors.New("不支持的导出格式")
	ErrNoSnapshotData       = errors.New("暂无指标数据")
	ErrTaskNotFound         = errors.New("任务不存在")
	ErrFileNotSupported     = errors.New("不支持的文件类型")
	UnauthorizedError       = errors.New("权限不足")
	UnExpectedError         = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:         BadRequest,
	ErrUserNotFound:         NotFound,
	ErrUserBan:              Unauthorized,
	ErrUserUsernameExist:    BadRequest,
	ErrUserEmailExist:       BadRequest,
	ErrPasswordIncorrect:    Unauthorized,
	ErrPlatformNotSupported: BadRequest,
	ErrAccountNotFound:      NotFound,
	ErrExportFormatInvalid:  BadRequest,
	ErrNoSnapshotData:       NotFound,
	ErrTaskNotFound:         NotFound,
	ErrFileNotSupported:     BadRequest,
	UnauthorizedError:       Unauthorized,
	UnExpectedError:         InternalServerError,
}
