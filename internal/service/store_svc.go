package service

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"gomarket_v1/internal/api/dto"
	"gomarket_v1/internal/model"
	"gomarket_v1/internal/repository"
	"gomarket_v1/pkg/errs"
)

// StoreService 店铺与运费配置
type StoreService struct {
	storeRepo   repository.StoreRepository
	countryRepo repository.CountryRepository
	rateRepo    repository.ShippingRateRepository
}

// NewStoreService 创建店铺服务
func NewStoreService(storeRepo repository.StoreRepository, countryRepo repository.CountryRepository, rateRepo repository.ShippingRateRepository) *StoreService {
	return &StoreService{
		storeRepo:   storeRepo,
		countryRepo: countryRepo,
		rateRepo:    rateRepo,
	}
}

// UpsertStore 创建或更新店铺
// 写入是原子的，唯一约束冲突由数据库报告，命中后再做一次诊断查询定位冲突字段
func (s *StoreService) UpsertStore(ctx context.Context, actor model.Actor, req dto.StoreUpsertReq) (*model.Store, error) {
	if !actor.IsSeller() && !actor.IsAdmin() {
		return nil, errs.New(errs.KindUnauthorized, "仅卖家可以管理店铺")
	}

	store := &model.Store{
		BaseModel:   model.BaseModel{ID: req.ID},
		Name:        req.Name,
		Description: req.Description,
		Email:       req.Email,
		Phone:       req.Phone,
		Url:         req.Url,
		Logo:        req.Logo,
		Cover:       req.Cover,
		UserID:      actor.UserID,
	}

	// 更新路径先做归属校验，防止卖家改写他人店铺
	if req.ID != "" {
		existing, err := s.storeRepo.GetByID(ctx, req.ID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.Wrap(errs.KindInternal, "查询店铺失败", err)
		}
		if existing != nil && existing.UserID != actor.UserID && !actor.IsAdmin() {
			return nil, errs.New(errs.KindUnauthorized, "无权操作该店铺")
		}
	}

	if err := s.storeRepo.Upsert(ctx, store); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, s.diagnoseConflict(ctx, store)
		}
		log.Printf("店铺写入失败: %v", err)
		return nil, errs.Wrap(errs.KindInternal, "店铺写入失败", err)
	}

	return s.storeRepo.GetByID(ctx, store.ID)
}

// GetStoreByURL 按 url 取店铺
func (s *StoreService) GetStoreByURL(ctx context.Context, url string) (*model.Store, error) {
	store, err := s.storeRepo.GetByURL(ctx, url)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.Newf(errs.KindNotFound, "店铺不存在: %s", url)
		}
		return nil, errs.Wrap(errs.KindInternal, "查询店铺失败", err)
	}
	return store, nil
}

// GetDefaultShippingDetails 查询店铺默认运费配置（仅店主）
func (s *StoreService) GetDefaultShippingDetails(ctx context.Context, actor model.Actor, storeURL string) (*dto.DefaultShippingDetailsResp, error) {
	store, err := s.getOwnedStore(ctx, actor, storeURL)
	if err != nil {
		return nil, err
	}

	return &dto.DefaultShippingDetailsResp{
		DefaultShippingService:           store.DefaultShippingService,
		DefaultShippingFeePerItem:        store.DefaultShippingFeePerItem,
		DefaultShippingFeeAdditionalItem: store.DefaultShippingFeeAdditionalItem,
		DefaultShippingFeePerKg:          store.DefaultShippingFeePerKg,
		DefaultShippingFeeFixed:          store.DefaultShippingFeeFixed,
		DefaultDeliveryTimeMin:           store.DefaultDeliveryTimeMin,
		DefaultDeliveryTimeMax:           store.DefaultDeliveryTimeMax,
		ReturnPolicy:                     store.ReturnPolicy,
	}, nil
}

// UpdateDefaultShippingDetails 更新店铺默认运费配置（仅店主）
func (s *StoreService) UpdateDefaultShippingDetails(ctx context.Context, actor model.Actor, storeURL string, req dto.DefaultShippingUpdateReq) (*dto.DefaultShippingDetailsResp, error) {
	store, err := s.getOwnedStore(ctx, actor, storeURL)
	if err != nil {
		return nil, err
	}

	if req.DefaultDeliveryTimeMin < 0 || req.DefaultDeliveryTimeMax < req.DefaultDeliveryTimeMin {
		return nil, errs.New(errs.KindValidation, "配送时间区间不合法")
	}

	fields := map[string]interface{}{
		"default_shipping_service":             req.DefaultShippingService,
		"default_shipping_fee_per_item":        req.DefaultShippingFeePerItem,
		"default_shipping_fee_additional_item": req.DefaultShippingFeeAdditionalItem,
		"default_shipping_fee_per_kg":          req.DefaultShippingFeePerKg,
		"default_shipping_fee_fixed":           req.DefaultShippingFeeFixed,
		"default_delivery_time_min":            req.DefaultDeliveryTimeMin,
		"default_delivery_time_max":            req.DefaultDeliveryTimeMax,
		"return_policy":                        req.ReturnPolicy,
	}
	if err = s.storeRepo.UpdateFields(ctx, store.ID, fields); err != nil {
		log.Printf("更新默认运费配置失败: %v", err)
		return nil, errs.Wrap(errs.KindInternal, "更新默认运费配置失败", err)
	}

	return s.GetDefaultShippingDetails(ctx, actor, storeURL)
}

// GetStoreShippingRates 列出全部国家与该店铺的运费覆盖
// 每个国家都出现一次，没有覆盖的国家 shipping_rate 为 null
func (s *StoreService) GetStoreShippingRates(ctx context.Context, actor model.Actor, storeURL string) ([]dto.CountryWithRateResp, error) {
	store, err := s.getOwnedStore(ctx, actor, storeURL)
	if err != nil {
		return nil, err
	}

	countries, err := s.countryRepo.List(ctx)
	if err != nil {
		return nil, errs.Wrap(errs.KindInternal, "查询国家列表失败", err)
	}
	rates, err := s.rateRepo.ListByStore(ctx, store.ID)
	if err != nil {
		return nil, errs.Wrap(errs.KindInternal, "查询运费覆盖失败", err)
	}

	rateByCountry := make(map[string]*model.ShippingRate, len(rates))
	for i := range rates {
		rateByCountry[rates[i].CountryID] = &rates[i]
	}

	result := make([]dto.CountryWithRateResp, 0, len(countries))
	for _, country := range countries {
		item := dto.CountryWithRateResp{
			CountryID:   country.ID,
			CountryName: country.Name,
		}
		if rate, ok := rateByCountry[country.ID]; ok {
			item.ShippingRate = &dto.ShippingRateResp{
				ID:                        rate.ID,
				CountryID:                 rate.CountryID,
				StoreID:                   rate.StoreID,
				ShippingService:           rate.ShippingService,
				ShippingFeePerItem:        rate.ShippingFeePerItem,
				ShippingFeeAdditionalItem: rate.ShippingFeeAdditionalItem,
				ShippingFeePerKg:          rate.ShippingFeePerKg,
				ShippingFeeFixed:          rate.ShippingFeeFixed,
				DeliveryTimeMin:           rate.DeliveryTimeMin,
				DeliveryTimeMax:           rate.DeliveryTimeMax,
				ReturnPolicy:              rate.ReturnPolicy,
			}
		}
		result = append(result, item)
	}
	return result, nil
}

// UpsertShippingRate 创建或更新单个国家的运费覆盖（仅店主）
func (s *StoreService) UpsertShippingRate(ctx context.Context, actor model.Actor, storeURL string, req dto.ShippingRateUpsertReq) error {
	store, err := s.getOwnedStore(ctx, actor, storeURL)
	if err != nil {
		return err
	}

	if req.CountryID == "" {
		return errs.New(errs.KindValidation, "缺少国家 ID")
	}
	if _, err = s.countryRepo.GetByID(ctx, req.CountryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.Newf(errs.KindNotFound, "国家不存在: %s", req.CountryID)
		}
		return errs.Wrap(errs.KindInternal, "查询国家失败", err)
	}
	if req.DeliveryTimeMin < 0 || req.DeliveryTimeMax < req.DeliveryTimeMin {
		return errs.New(errs.KindValidation, "配送时间区间不合法")
	}

	rate := &model.ShippingRate{
		BaseModel:                 model.BaseModel{ID: req.ID},
		ShippingService:           req.ShippingService,
		ShippingFeePerItem:        req.ShippingFeePerItem,
		ShippingFeeAdditionalItem: req.ShippingFeeAdditionalItem,
		ShippingFeePerKg:          req.ShippingFeePerKg,
		ShippingFeeFixed:          req.ShippingFeeFixed,
		DeliveryTimeMin:           req.DeliveryTimeMin,
		DeliveryTimeMax:           req.DeliveryTimeMax,
		ReturnPolicy:              req.ReturnPolicy,
		CountryID:                 req.CountryID,
		StoreID:                   store.ID,
	}
	if err = s.rateRepo.Upsert(ctx, rate); err != nil {
		log.Printf("运费覆盖写入失败: %v", err)
		return errs.Wrap(errs.KindInternal, "运费覆盖写入失败", err)
	}
	return nil
}

// ==================== 私有方法 ====================

// getOwnedStore 按 url 取店铺并校验归属，管理员放行
func (s *StoreService) getOwnedStore(ctx context.Context, actor model.Actor, storeURL string) (*model.Store, error) {
	if actor.IsAdmin() {
		return s.GetStoreByURL(ctx, storeURL)
	}
	store, err := s.storeRepo.GetByURLAndOwner(ctx, storeURL, actor.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.New(errs.KindUnauthorized, "店铺不存在或无权访问")
		}
		return nil, errs.Wrap(errs.KindInternal, "查询店铺失败", err)
	}
	return store, nil
}

// diagnoseConflict 唯一约束命中后定位冲突字段，生成可读文案
func (s *StoreService) diagnoseConflict(ctx context.Context, store *model.Store) error {
	existing, err := s.storeRepo.FindConflicting(ctx, store)
	if err != nil {
		return errs.New(errs.KindConflict, "店铺信息与已有店铺冲突")
	}
	switch {
	case existing.Name == store.Name:
		return errs.Newf(errs.KindConflict, "店铺名称已被占用: %s", store.Name)
	case existing.Email == store.Email:
		return errs.Newf(errs.KindConflict, "店铺邮箱已被占用: %s", store.Email)
	case existing.Phone == store.Phone:
		return errs.Newf(errs.KindConflict, "店铺电话已被占用: %s", store.Phone)
	default:
		return errs.Newf(errs.KindConflict, "店铺 URL 已被占用: %s", store.Url)
	}
}
