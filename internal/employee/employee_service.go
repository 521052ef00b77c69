package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	"github.com/control-room-cisa/server-planillero-sub000/internal/classify"
	employeeerrors "github.com/control-room-cisa/server-planillero-sub000/internal/employee/errors"
)

const employeeAllCacheKey = "employees:all"

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client) Service {
	return &service{
		db:     db,
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: zap.L().Named("employee.service"),
	}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	if !classify.KnownPolicy(req.SchedulePolicyCode) {
		return EmployeeResponse{}, employeeerrors.ErrUnknownPolicyCode
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByEmail(ctx, req.Email); err == nil {
		return EmployeeResponse{}, employeeerrors.ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return EmployeeResponse{}, err
	}

	row := &Employee{
		ID:                 uuid.New(),
		FullName:           req.FullName,
		Email:              req.Email,
		SchedulePolicyCode: req.SchedulePolicyCode,
	}

	if err := qtx.Create(ctx, row); err != nil {
		return EmployeeResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return EmployeeResponse{}, err
	}

	s.invalidateCache(ctx)
	s.logger.Info("employee created",
		zap.String("employee_id", row.ID.String()),
		zap.String("policy_code", row.SchedulePolicyCode),
	)
	return mapToResponse(*row), nil
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, employeeAllCacheKey).Result()
		if err == nil {
			var resp []EmployeeResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(employeeAllCacheKey, func() (interface{}, error) {
		rows, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, err
		}

		resp := make([]EmployeeResponse, len(rows))
		for i, row := range rows {
			resp[i] = mapToResponse(row)
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, employeeAllCacheKey, jsonData, 30*time.Minute)
			}
		}
		return resp, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]EmployeeResponse), nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return EmployeeResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}
	if !classify.KnownPolicy(req.SchedulePolicyCode) {
		return EmployeeResponse{}, employeeerrors.ErrUnknownPolicyCode
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return EmployeeResponse{}, err
	}

	row.FullName = req.FullName
	row.SchedulePolicyCode = req.SchedulePolicyCode

	if err := qtx.Update(ctx, row); err != nil {
		return EmployeeResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return EmployeeResponse{}, err
	}

	s.invalidateCache(ctx)
	return mapToResponse(*row), nil
}

func (s *service) invalidateCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, employeeAllCacheKey).Err(); err != nil {
		s.logger.Warn("employee cache invalidation failed", zap.Error(err))
	}
}

func mapToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:                 e.ID.String(),
		FullName:           e.FullName,
		Email:              e.Email,
		SchedulePolicyCode: e.SchedulePolicyCode,
	}
}
