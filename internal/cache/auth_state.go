package cache

import (
	"context"
	"time"

	"github.com/brandsite-api/internal/models"
)

const authStateCacheTTL = 10 * time.Minute

// EditorAuthState 编辑鉴权快照
// token_invalid_before 为 Unix 秒时间戳，0 表示未设置
type EditorAuthState struct {
	EditorID           string `json:"editor_id"`
	Email              string `json:"email"`
	TokenVersion       uint64 `json:"token_version"`
	TokenInvalidBefore int64  `json:"token_invalid_before"`
	IsSuper            bool   `json:"is_super"`
	UpdatedAt          int64  `json:"updated_at"`
}

func editorAuthStateKey(editorID string) string {
	return "auth:editor:" + editorID
}

// BuildEditorAuthState 从编辑模型构建鉴权快照
func BuildEditorAuthState(editor *models.Editor) *EditorAuthState {
	if editor == nil {
		return nil
	}
	state := &EditorAuthState{
		EditorID:     editor.ID,
		Email:        editor.Email,
		TokenVersion: editor.TokenVersion,
		IsSuper:      editor.IsSuper,
		UpdatedAt:    time.Now().Unix(),
	}
	if editor.TokenInvalidBefore != nil {
		state.TokenInvalidBefore = editor.TokenInvalidBefore.Unix()
	}
	return state
}

// GetEditorAuthState 获取编辑鉴权快照
func GetEditorAuthState(ctx context.Context, editorID string) (*EditorAuthState, bool, error) {
	if editorID == "" {
		return nil, false, nil
	}
	var state EditorAuthState
	hit, err := GetJSON(ctx, editorAuthStateKey(editorID), &state)
	if err != nil || !hit {
		return nil, hit, err
	}
	return &state, true, nil
}

// SetEditorAuthState 写入编辑鉴权快照
func SetEditorAuthState(ctx context.Context, state *EditorAuthState) error {
	if state == nil || state.EditorID == "" {
		return nil
	}
	return SetJSON(ctx, editorAuthStateKey(state.EditorID), state, authStateCacheTTL)
}

// DelEditorAuthState 删除编辑鉴权快照
func DelEditorAuthState(ctx context.Context, editorID string) error {
	if editorID == "" {
		return nil
	}
	return Del(ctx, editorAuthStateKey(editorID))
}
