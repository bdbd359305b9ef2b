package utils

import (
	"fmt"

	"github.com/gosimple/slug"
)

// UniqueSlug 基于 base 生成唯一 slug
// exists 回调查询该 slug 是否已被占用，占用时追加自增后缀重试
func UniqueSlug(base string, exists func(candidate string) (bool, error)) (string, error) {
	s := slug.Make(base)
	candidate := s
	counter := 1

	for {
		taken, err := exists(candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", s, counter)
		counter++
	}
}
