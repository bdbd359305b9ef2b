package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"gomarket_v1/internal/repository"
	"gomarket_v1/pkg/errs"
	"gomarket_v1/pkg/geo"
	"gomarket_v1/pkg/utils"
)

// CartService 结算前的购物车校验
// 购物车本身存在客户端，下单前用数据库里的真实数据重新核对每一项
type CartService struct {
	productRepo repository.ProductRepository
	shippingSvc *ShippingService
}

// NewCartService 创建购物车服务
func NewCartService(productRepo repository.ProductRepository, shippingSvc *ShippingService) *CartService {
	return &CartService{
		productRepo: productRepo,
		shippingSvc: shippingSvc,
	}
}

// ValidatedCartItem 校验后的购物车项
type ValidatedCartItem struct {
	utils.CartProduct
	// 客户端快照与库内数据不一致时为 false，前端提示用户刷新
	Valid bool `json:"valid"`
}

// ValidateCart 逐项校验购物车
// 价格、库存、运费全部以数据库为准，数量超出库存时截断到库存上限
func (s *CartService) ValidateCart(ctx context.Context, userCountry geo.Country, items []utils.CartProduct) ([]ValidatedCartItem, error) {
	result := make([]ValidatedCartItem, 0, len(items))
	for _, item := range items {
		validated, err := s.validateItem(ctx, userCountry, item)
		if err != nil {
			return nil, err
		}
		result = append(result, *validated)
	}
	return result, nil
}

// ==================== 私有方法 ====================

func (s *CartService) validateItem(ctx context.Context, userCountry geo.Country, item utils.CartProduct) (*ValidatedCartItem, error) {
	invalid := &ValidatedCartItem{CartProduct: item, Valid: false}

	if !utils.IsProductValidToAdd(item) {
		return invalid, nil
	}

	product, err := s.productRepo.GetWithShippingInfo(ctx, item.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return invalid, nil
		}
		return nil, errs.Wrap(errs.KindInternal, "查询商品失败", err)
	}

	// 定位变体和尺码
	for _, variant := range product.Variants {
		if variant.ID != item.VariantID {
			continue
		}
		for _, size := range variant.Sizes {
			if size.ID != item.SizeID {
				continue
			}
			if size.Quantity <= 0 {
				return invalid, nil
			}

			item.Price = size.Price - size.Price*size.Discount/100
			item.Stock = size.Quantity
			item.Weight = variant.Weight
			if item.Quantity > size.Quantity {
				item.Quantity = size.Quantity
			}

			// 以库内配置重算运费
			details, err := s.shippingSvc.GetShippingDetails(ctx, product, product.Store, userCountry)
			if err != nil {
				return nil, err
			}
			if details == nil {
				// 该国不可配送
				return invalid, nil
			}
			fee, err := s.shippingSvc.CalculateShippingFee(
				product.ShippingFeeMethod,
				details.ShippingFee, details.ExtraShippingFee,
				item.Quantity,
			)
			if err != nil {
				return nil, err
			}

			item.ShippingMethod = string(product.ShippingFeeMethod)
			item.ShippingService = details.ShippingService
			item.ShippingFee = fee
			item.ExtraShippingFee = details.ExtraShippingFee
			item.DeliveryTimeMin = details.DeliveryTimeMin
			item.DeliveryTimeMax = details.DeliveryTimeMax

			return &ValidatedCartItem{CartProduct: item, Valid: true}, nil
		}
	}
	return invalid, nil
}
