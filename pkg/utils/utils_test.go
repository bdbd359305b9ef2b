package utils

import (
	"testing"
	"time"
)

func TestUniqueSlug(t *testing.T) {
	taken := map[string]bool{"wool-scarf": true, "wool-scarf-1": true}
	exists := func(candidate string) (bool, error) {
		return taken[candidate], nil
	}

	got, err := UniqueSlug("Wool Scarf", exists)
	if err != nil {
		t.Fatalf("生成 slug 失败: %v", err)
	}
	if got != "wool-scarf-2" {
		t.Errorf("slug 期望 wool-scarf-2, 实际: %s", got)
	}

	got, err = UniqueSlug("Silk Scarf", exists)
	if err != nil {
		t.Fatalf("生成 slug 失败: %v", err)
	}
	if got != "silk-scarf" {
		t.Errorf("未占用时直接使用 slug, 实际: %s", got)
	}
}

func TestIsProductValidToAdd(t *testing.T) {
	valid := CartProduct{
		ProductID:       "p1",
		VariantID:       "v1",
		ProductSlug:     "wool-scarf",
		VariantSlug:     "red-wool-scarf",
		Name:            "Wool Scarf",
		VariantName:     "Red Wool Scarf",
		Image:           "http://img.test/a.jpg",
		VariantImage:    "http://img.test/b.jpg",
		SizeID:          "sz1",
		Size:            "M",
		Quantity:        2,
		Price:           29.9,
		Stock:           10,
		Weight:          0.3,
		ShippingMethod:  "ITEM",
		DeliveryTimeMin: 7,
		DeliveryTimeMax: 31,
	}

	if !IsProductValidToAdd(valid) {
		t.Fatal("完整快照应通过校验")
	}

	cases := []struct {
		name   string
		mutate func(p *CartProduct)
	}{
		{"缺商品ID", func(p *CartProduct) { p.ProductID = "" }},
		{"缺变体图", func(p *CartProduct) { p.VariantImage = "" }},
		{"缺尺码", func(p *CartProduct) { p.Size = "" }},
		{"缺计费方式", func(p *CartProduct) { p.ShippingMethod = "" }},
		{"数量为零", func(p *CartProduct) { p.Quantity = 0 }},
		{"价格为零", func(p *CartProduct) { p.Price = 0 }},
		{"库存为零", func(p *CartProduct) { p.Stock = 0 }},
		{"重量为零", func(p *CartProduct) { p.Weight = 0 }},
		{"配送区间倒挂", func(p *CartProduct) { p.DeliveryTimeMin = 10; p.DeliveryTimeMax = 5 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := valid
			tc.mutate(&p)
			if IsProductValidToAdd(p) {
				t.Errorf("%s 时应校验失败", tc.name)
			}
		})
	}
}

func TestShippingDatesRange(t *testing.T) {
	minDate, maxDate := ShippingDatesRange(7, 31)

	gap := maxDate.Sub(minDate)
	if gap != 24*24*time.Hour {
		t.Errorf("区间跨度期望 24 天, 实际: %v", gap)
	}
	if !minDate.After(time.Now()) {
		t.Error("最早送达日应晚于当前时间")
	}
}
