package ui

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"seeker/internal/chat"
	"seeker/internal/models"
)

// Controller calls publish snapshots through Program.Send, so they must run
// as commands and never inside Update.

func (m *Model) sendMessage(text string) tea.Cmd {
	ctx, ctrl := m.Ctx, m.Controller
	return func() tea.Msg {
		// Reply failures already show up in the conversation.
		err := ctrl.SendMessage(ctx, text)
		if errors.Is(err, chat.ErrNoIdentity) || errors.Is(err, chat.ErrCreateSession) {
			return ErrMsg(err)
		}
		return nil
	}
}

func (m *Model) switchSession(id models.ID) tea.Cmd {
	ctx, ctrl := m.Ctx, m.Controller
	return func() tea.Msg {
		ctrl.SwitchSession(ctx, id)
		return nil
	}
}

func (m *Model) newSession() tea.Cmd {
	ctx, ctrl := m.Ctx, m.Controller
	return func() tea.Msg {
		if _, err := ctrl.NewSession(ctx); err != nil {
			return ErrMsg(fmt.Errorf("could not create session: %w", err))
		}
		return nil
	}
}

func (m *Model) refreshSessions() tea.Cmd {
	ctx, ctrl := m.Ctx, m.Controller
	return func() tea.Msg {
		ctrl.RefreshSessions(ctx)
		return nil
	}
}

func (m *Model) renameSession(id models.ID, title string) tea.Cmd {
	ctx, ctrl := m.Ctx, m.Controller
	return func() tea.Msg {
		if err := ctrl.RenameSession(ctx, id, title); err != nil {
			return ErrMsg(fmt.Errorf("rename failed: %w", err))
		}
		return nil
	}
}

func (m *Model) deleteSession(id models.ID) tea.Cmd {
	ctx, ctrl := m.Ctx, m.Controller
	return func() tea.Msg {
		if err := ctrl.DeleteSession(ctx, id); err != nil {
			return ErrMsg(fmt.Errorf("delete failed: %w", err))
		}
		return nil
	}
}

func (m *Model) openPush() tea.Cmd {
	if m.Push == nil {
		return nil
	}
	ctx, push := m.Ctx, m.Push
	return func() tea.Msg {
		return PushStatusMsg{Err: push.Open(ctx)}
	}
}
