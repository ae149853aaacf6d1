package service

import "strings"

// Editor 当前会话中的已认证编辑
type Editor struct {
	ID    string
	Email string
}

// SessionGuard 回答"当前是否有已认证编辑"，由调用方显式传入
type SessionGuard interface {
	CurrentEditor() (*Editor, bool)
}

// EditorSession 基于已校验 JWT 构建的会话
type EditorSession struct {
	editor *Editor
}

// NewEditorSession 创建编辑会话；id 为空时视为匿名
func NewEditorSession(id, email string) EditorSession {
	if strings.TrimSpace(id) == "" {
		return EditorSession{}
	}
	return EditorSession{editor: &Editor{ID: id, Email: email}}
}

// CurrentEditor 实现 SessionGuard
func (s EditorSession) CurrentEditor() (*Editor, bool) {
	if s.editor == nil {
		return nil, false
	}
	return s.editor, true
}

// Anonymous 无会话（公开读取路径）
var Anonymous SessionGuard = EditorSession{}

func currentEditor(session SessionGuard) (*Editor, bool) {
	if session == nil {
		return nil, false
	}
	editor, ok := session.CurrentEditor()
	if !ok || editor == nil || strings.TrimSpace(editor.ID) == "" {
		return nil, false
	}
	return editor, true
}
