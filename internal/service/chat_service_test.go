package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-companion-be/internal/dto"
	"ai-companion-be/internal/entity"
	"ai-companion-be/internal/pkg/apperrors"
	"ai-companion-be/pkg/ai/gateway"
)

func seedCompanion(factory *fakeFactory, userId uuid.UUID) *entity.Companion {
	companion := &entity.Companion{
		Id:           uuid.New(),
		Name:         "Luna",
		Description:  "A thoughtful stargazer",
		Instructions: "Speak gently.",
		Seed:         "User: hi\nLuna: hello",
		Src:          "🤖",
		UserId:       userId,
		CategoryId:   uuid.New(),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	factory.uow.companions.companions = append(factory.uow.companions.companions, companion)
	return companion
}

func TestSendMessagePersistsBothSides(t *testing.T) {
	factory := newFakeFactory()
	gw := &scriptedGateway{reply: "The stars say hello back."}
	svc := NewChatService(factory, gw, nopLogger{})
	ctx := context.Background()

	userId := uuid.New()
	companion := seedCompanion(factory, userId)

	res, err := svc.SendMessage(ctx, userId, companion.Id, &dto.SendMessageRequest{Message: "hello there"})
	require.NoError(t, err)
	assert.Equal(t, "The stars say hello back.", res.Response)

	messages := factory.uow.messages.messages
	require.Len(t, messages, 2)
	assert.Equal(t, "user", messages[0].Role)
	assert.Equal(t, "hello there", messages[0].Content)
	assert.Equal(t, "assistant", messages[1].Role)
	assert.Equal(t, "The stars say hello back.", messages[1].Content)

	assert.Equal(t, "Luna", gw.gotPersona.Name)
	assert.Equal(t, "hello there", gw.gotMessage)
}

// A degraded completion still answers the user but leaves only the user
// message in the conversation record.
func TestSendMessageDegradedSkipsAssistantPersistence(t *testing.T) {
	factory := newFakeFactory()
	gw := &scriptedGateway{reply: gateway.FallbackQuota, err: gateway.ErrDegraded}
	svc := NewChatService(factory, gw, nopLogger{})
	ctx := context.Background()

	userId := uuid.New()
	companion := seedCompanion(factory, userId)

	res, err := svc.SendMessage(ctx, userId, companion.Id, &dto.SendMessageRequest{Message: "are you there?"})
	require.NoError(t, err)
	assert.Equal(t, gateway.FallbackQuota, res.Response)

	messages := factory.uow.messages.messages
	require.Len(t, messages, 1)
	assert.Equal(t, "user", messages[0].Role)
	assert.Equal(t, "are you there?", messages[0].Content)
}

func TestSendMessageRejectsBlankMessage(t *testing.T) {
	factory := newFakeFactory()
	svc := NewChatService(factory, &scriptedGateway{reply: "x"}, nopLogger{})
	ctx := context.Background()

	userId := uuid.New()
	companion := seedCompanion(factory, userId)

	for _, message := range []string{"", "   ", "\n\t"} {
		_, err := svc.SendMessage(ctx, userId, companion.Id, &dto.SendMessageRequest{Message: message})
		require.Error(t, err)
		assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	}
	assert.Empty(t, factory.uow.messages.messages)
}

func TestSendMessageUnknownCompanion(t *testing.T) {
	factory := newFakeFactory()
	svc := NewChatService(factory, &scriptedGateway{reply: "x"}, nopLogger{})

	_, err := svc.SendMessage(context.Background(), uuid.New(), uuid.New(), &dto.SendMessageRequest{Message: "hi"})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
	assert.EqualError(t, err, "Companion not found")
}

// The prompt context window holds the last ten stored messages and never
// includes the message being sent.
func TestSendMessageHistoryWindow(t *testing.T) {
	factory := newFakeFactory()
	gw := &scriptedGateway{reply: "ok"}
	svc := NewChatService(factory, gw, nopLogger{})
	ctx := context.Background()

	userId := uuid.New()
	companion := seedCompanion(factory, userId)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 12; i++ {
		factory.uow.messages.messages = append(factory.uow.messages.messages, &entity.Message{
			Id:          uuid.New(),
			CompanionId: companion.Id,
			UserId:      userId,
			Role:        "user",
			Content:     fmt.Sprintf("msg-%d", i),
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		})
	}

	_, err := svc.SendMessage(ctx, userId, companion.Id, &dto.SendMessageRequest{Message: "latest"})
	require.NoError(t, err)

	require.Len(t, gw.gotHistory, 10)
	assert.Equal(t, "msg-2", gw.gotHistory[0].Content)
	assert.Equal(t, "msg-11", gw.gotHistory[9].Content)
	for _, msg := range gw.gotHistory {
		assert.NotEqual(t, "latest", msg.Content)
	}
}

func TestGetConversationOrdersOldestFirst(t *testing.T) {
	factory := newFakeFactory()
	svc := NewChatService(factory, &scriptedGateway{reply: "x"}, nopLogger{})
	ctx := context.Background()

	userId := uuid.New()
	companion := seedCompanion(factory, userId)

	now := time.Now()
	factory.uow.messages.messages = append(factory.uow.messages.messages,
		&entity.Message{Id: uuid.New(), CompanionId: companion.Id, UserId: userId, Role: "assistant", Content: "second", CreatedAt: now},
		&entity.Message{Id: uuid.New(), CompanionId: companion.Id, UserId: userId, Role: "user", Content: "first", CreatedAt: now.Add(-time.Minute)},
		&entity.Message{Id: uuid.New(), CompanionId: companion.Id, UserId: uuid.New(), Role: "user", Content: "someone else", CreatedAt: now},
	)

	res, err := svc.GetConversation(ctx, userId, companion.Id)
	require.NoError(t, err)

	assert.Equal(t, companion.Id, res.Companion.Id)
	require.Len(t, res.Messages, 2)
	assert.Equal(t, "first", res.Messages[0].Content)
	assert.Equal(t, "second", res.Messages[1].Content)
}

func TestGetConversationUnknownCompanion(t *testing.T) {
	factory := newFakeFactory()
	svc := NewChatService(factory, &scriptedGateway{reply: "x"}, nopLogger{})

	_, err := svc.GetConversation(context.Background(), uuid.New(), uuid.New())
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

// Fresh conversations with a shared companion start empty for each user.
func TestGetConversationIsPerUser(t *testing.T) {
	factory := newFakeFactory()
	svc := NewChatService(factory, &scriptedGateway{reply: "x"}, nopLogger{})
	ctx := context.Background()

	owner := uuid.New()
	companion := seedCompanion(factory, owner)
	factory.uow.messages.messages = append(factory.uow.messages.messages,
		&entity.Message{Id: uuid.New(), CompanionId: companion.Id, UserId: owner, Role: "user", Content: "hi", CreatedAt: time.Now()},
	)

	res, err := svc.GetConversation(ctx, uuid.New(), companion.Id)
	require.NoError(t, err)
	assert.Empty(t, res.Messages)
}
