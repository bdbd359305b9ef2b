package service

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"gomarket_v1/internal/api/dto"
	"gomarket_v1/internal/model"
	"gomarket_v1/internal/repository"
	"gomarket_v1/pkg/errs"
)

func newTestCategorySvc(db *gorm.DB) *CategoryService {
	return NewCategoryService(
		repository.NewCategoryRepository(db),
		repository.NewSubCategoryRepository(db),
	)
}

func TestCategoryService_UpsertRequiresAdmin(t *testing.T) {
	db := setupSvcTestDB(t)
	svc := newTestCategorySvc(db)

	req := dto.CategoryUpsertReq{Name: "Clothing", Url: "clothing"}
	_, err := svc.UpsertCategory(context.Background(), sellerActor("seller-1"), req)
	if err == nil {
		t.Fatal("非管理员维护分类应被拒绝")
	}
	if !errs.Is(err, errs.KindUnauthorized) {
		t.Errorf("期望权限错误, 实际类别: %v", errs.KindOf(err))
	}

	if _, err = svc.UpsertCategory(context.Background(), adminActor(), req); err != nil {
		t.Fatalf("管理员创建分类失败: %v", err)
	}
}

func TestCategoryService_UpsertConflictDiagnosis(t *testing.T) {
	db := setupSvcTestDB(t)
	svc := newTestCategorySvc(db)

	if _, err := svc.UpsertCategory(context.Background(), adminActor(),
		dto.CategoryUpsertReq{Name: "Clothing", Url: "clothing"}); err != nil {
		t.Fatalf("创建分类失败: %v", err)
	}

	// url 撞已有分类
	_, err := svc.UpsertCategory(context.Background(), adminActor(),
		dto.CategoryUpsertReq{Name: "Apparel", Url: "clothing"})
	if err == nil {
		t.Fatal("url 冲突应报错")
	}
	if !errs.Is(err, errs.KindConflict) {
		t.Errorf("期望冲突错误, 实际类别: %v", errs.KindOf(err))
	}
}

func TestCategoryService_UpsertUpdatesExisting(t *testing.T) {
	db := setupSvcTestDB(t)
	svc := newTestCategorySvc(db)

	created, err := svc.UpsertCategory(context.Background(), adminActor(),
		dto.CategoryUpsertReq{Name: "Clothing", Url: "clothing"})
	if err != nil {
		t.Fatalf("创建分类失败: %v", err)
	}

	updated, err := svc.UpsertCategory(context.Background(), adminActor(),
		dto.CategoryUpsertReq{ID: created.ID, Name: "Apparel", Url: "clothing", Featured: true})
	if err != nil {
		t.Fatalf("更新分类失败: %v", err)
	}
	if updated.ID != created.ID || updated.Name != "Apparel" || !updated.Featured {
		t.Errorf("更新结果不符: %+v", updated)
	}

	var count int64
	db.Model(&model.Category{}).Count(&count)
	if count != 1 {
		t.Errorf("带 ID 更新不应新建记录, 实际条数: %d", count)
	}
}

func TestCategoryService_SubCategoryNeedsParent(t *testing.T) {
	db := setupSvcTestDB(t)
	svc := newTestCategorySvc(db)

	_, err := svc.UpsertSubCategory(context.Background(), adminActor(),
		dto.SubCategoryUpsertReq{Name: "Scarves", Url: "scarves", CategoryID: "missing"})
	if err == nil {
		t.Fatal("父分类不存在应报错")
	}
	if !errs.Is(err, errs.KindNotFound) {
		t.Errorf("期望不存在错误, 实际类别: %v", errs.KindOf(err))
	}
}

func TestCategoryService_ListSubCategoriesByParent(t *testing.T) {
	db := setupSvcTestDB(t)
	category1, _ := seedTaxonomy(t, db, "scarves")
	seedTaxonomy(t, db, "hats")

	svc := newTestCategorySvc(db)
	scoped, err := svc.ListSubCategories(context.Background(), category1.ID)
	if err != nil {
		t.Fatalf("查询二级分类失败: %v", err)
	}
	if len(scoped) != 1 {
		t.Errorf("按父分类过滤期望 1 条, 实际: %d", len(scoped))
	}

	all, err := svc.ListSubCategories(context.Background(), "")
	if err != nil {
		t.Fatalf("查询全部二级分类失败: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("全部二级分类期望 2 条, 实际: %d", len(all))
	}
}

func TestCategoryService_SampleLimitDefault(t *testing.T) {
	db := setupSvcTestDB(t)
	for _, suffix := range []string{"a", "b", "c"} {
		seedTaxonomy(t, db, suffix)
	}

	svc := newTestCategorySvc(db)
	sampled, err := svc.SampleSubCategories(context.Background(), dto.SubCategorySampleReq{Limit: 2})
	if err != nil {
		t.Fatalf("采样二级分类失败: %v", err)
	}
	if len(sampled) != 2 {
		t.Errorf("采样上限 2, 实际: %d", len(sampled))
	}

	sampled, err = svc.SampleSubCategories(context.Background(), dto.SubCategorySampleReq{})
	if err != nil {
		t.Fatalf("采样二级分类失败: %v", err)
	}
	if len(sampled) != 3 {
		t.Errorf("默认上限应放下全部 3 条, 实际: %d", len(sampled))
	}
}

func TestOfferTagService_CRUD(t *testing.T) {
	db := setupSvcTestDB(t)
	svc := NewOfferTagService(repository.NewOfferTagRepository(db))

	if _, err := svc.UpsertOfferTag(context.Background(), buyerActor("u1"),
		dto.OfferTagUpsertReq{Name: "Summer Sale", Url: "summer-sale"}); err == nil {
		t.Fatal("非管理员维护标签应被拒绝")
	}

	tag, err := svc.UpsertOfferTag(context.Background(), adminActor(),
		dto.OfferTagUpsertReq{Name: "Summer Sale", Url: "summer-sale"})
	if err != nil {
		t.Fatalf("创建标签失败: %v", err)
	}

	_, err = svc.UpsertOfferTag(context.Background(), adminActor(),
		dto.OfferTagUpsertReq{Name: "Summer Sale", Url: "other-url"})
	if !errs.Is(err, errs.KindConflict) {
		t.Errorf("名称冲突期望冲突错误, 实际: %v", err)
	}

	tags, err := svc.ListOfferTags(context.Background())
	if err != nil {
		t.Fatalf("查询标签失败: %v", err)
	}
	if len(tags) != 1 {
		t.Errorf("标签数期望 1, 实际: %d", len(tags))
	}

	if err = svc.DeleteOfferTag(context.Background(), adminActor(), tag.ID); err != nil {
		t.Fatalf("删除标签失败: %v", err)
	}
}
