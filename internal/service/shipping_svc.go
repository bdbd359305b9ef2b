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
	"gomarket_v1/pkg/geo"
)

// ShippingService 运费解析与计算
type ShippingService struct {
	countryRepo repository.CountryRepository
	rateRepo    repository.ShippingRateRepository
}

// NewShippingService 创建运费服务
func NewShippingService(countryRepo repository.CountryRepository, rateRepo repository.ShippingRateRepository) *ShippingService {
	return &ShippingService{
		countryRepo: countryRepo,
		rateRepo:    rateRepo,
	}
}

// GetShippingDetails 解析商品对访客国家的配送信息
// 国家必须按 (name, code) 精确命中基准表，命中失败返回 nil 表示不可配送
// 覆盖记录里数值 0 / 空串视为未设置，逐字段回退到店铺默认值
func (s *ShippingService) GetShippingDetails(ctx context.Context, product *model.Product, store *model.Store, userCountry geo.Country) (*dto.ShippingDetailsResp, error) {
	// 1. 国家基准表精确匹配，匹配不到就视为该国不可配送
	country, err := s.countryRepo.GetByNameAndCode(ctx, userCountry.Name, userCountry.Code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errs.Wrap(errs.KindInternal, "查询国家失败", err)
	}

	// 2. 取该店铺对该国家的覆盖记录，没有覆盖就全部走默认值
	rate, err := s.rateRepo.GetByCountryAndStore(ctx, country.ID, store.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.Wrap(errs.KindInternal, "查询运费覆盖失败", err)
	}
	if rate == nil {
		rate = &model.ShippingRate{}
	}

	details := &dto.ShippingDetailsResp{
		ShippingFeeMethod: string(product.ShippingFeeMethod),
		ShippingService:   fallbackStr(rate.ShippingService, store.DefaultShippingService),
		DeliveryTimeMin:   fallbackInt(rate.DeliveryTimeMin, store.DefaultDeliveryTimeMin),
		DeliveryTimeMax:   fallbackInt(rate.DeliveryTimeMax, store.DefaultDeliveryTimeMax),
		ReturnPolicy:      fallbackStr(rate.ReturnPolicy, store.ReturnPolicy),
		CountryCode:       userCountry.Code,
		CountryName:       userCountry.Name,
		City:              userCountry.City,
	}

	// 3. 按计费方式取对应的费率字段
	switch product.ShippingFeeMethod {
	case model.ShippingFeeMethodItem:
		details.ShippingFee = fallbackFloat(rate.ShippingFeePerItem, store.DefaultShippingFeePerItem)
		details.ExtraShippingFee = fallbackFloat(rate.ShippingFeeAdditionalItem, store.DefaultShippingFeeAdditionalItem)
	case model.ShippingFeeMethodWeight:
		details.ShippingFee = fallbackFloat(rate.ShippingFeePerKg, store.DefaultShippingFeePerKg)
	case model.ShippingFeeMethodFixed:
		details.ShippingFee = fallbackFloat(rate.ShippingFeeFixed, store.DefaultShippingFeeFixed)
	default:
		return nil, errs.Newf(errs.KindValidation, "无效的运费计算方式: %q", product.ShippingFeeMethod)
	}

	// 4. 免邮配置只对白名单国家生效，命中后费用全部清零
	if isFreeShippingFor(product.FreeShipping, country.ID) {
		details.IsFreeShipping = true
		details.ShippingFee = 0
		details.ExtraShippingFee = 0
	}

	return details, nil
}

// CalculateShippingFee 按计费方式计算一个购物项的运费
// ITEM: 首件 fee，之后每件 extraFee
// WEIGHT: 公斤费率直接乘以件数，不乘单件重量（沿用线上计费口径）
// FIXED: 固定费用，与数量无关
func (s *ShippingService) CalculateShippingFee(method model.ShippingFeeMethod, fee, extraFee float64, quantity int) (float64, error) {
	switch method {
	case model.ShippingFeeMethodItem:
		if quantity <= 0 {
			return 0, nil
		}
		return fee + extraFee*float64(quantity-1), nil
	case model.ShippingFeeMethodWeight:
		return fee * float64(quantity), nil
	case model.ShippingFeeMethodFixed:
		return fee, nil
	default:
		return 0, errs.Newf(errs.KindValidation, "无效的运费计算方式: %q", method)
	}
}

// ListCountries 国家基准表（按名称升序）
func (s *ShippingService) ListCountries(ctx context.Context) ([]model.Country, error) {
	countries, err := s.countryRepo.List(ctx)
	if err != nil {
		log.Printf("查询国家列表失败: %v", err)
		return nil, errs.Wrap(errs.KindInternal, "查询国家列表失败", err)
	}
	return countries, nil
}

// ==================== 私有方法 ====================

// isFreeShippingFor 商品对指定国家是否免邮
func isFreeShippingFor(fs *model.FreeShipping, countryID string) bool {
	if fs == nil {
		return false
	}
	for _, c := range fs.EligibleCountries {
		if c.CountryID == countryID {
			return true
		}
	}
	return false
}

func fallbackStr(v, def string) string {
	if v != "" {
		return v
	}
	return def
}

func fallbackFloat(v, def float64) float64 {
	if v != 0 {
		return v
	}
	return def
}

func fallbackInt(v, def int) int {
	if v != 0 {
		return v
	}
	return def
}
