package service

// PostDraft 编辑会话内的标题/slug 状态。
// 标题变化时 slug 自动跟随，直到编辑手动修改过 slug；此后本会话内手动值优先。
type PostDraft struct {
	title       string
	slug        string
	slugTouched bool
}

// NewPostDraft 以已保存的文章初始化会话；已有 slug 且与标题推导值不同视为手动设置
func NewPostDraft(title, slug string) *PostDraft {
	d := &PostDraft{title: title, slug: slug}
	if slug == "" {
		d.slug = GenerateSlug(title)
	} else if slug != GenerateSlug(title) {
		d.slugTouched = true
	}
	return d
}

// SetTitle 更新标题，未手动编辑过 slug 时重新推导
func (d *PostDraft) SetTitle(title string) {
	d.title = title
	if !d.slugTouched {
		d.slug = GenerateSlug(title)
	}
}

// SetSlug 手动编辑 slug；输入会被规范化。清空 slug 会恢复自动推导
func (d *PostDraft) SetSlug(slug string) {
	normalized := GenerateSlug(slug)
	if normalized == "" {
		d.slugTouched = false
		d.slug = GenerateSlug(d.title)
		return
	}
	d.slugTouched = true
	d.slug = normalized
}

func (d *PostDraft) Title() string { return d.title }

func (d *PostDraft) Slug() string { return d.slug }

// SlugTouched 本会话是否手动编辑过 slug
func (d *PostDraft) SlugTouched() bool { return d.slugTouched }
