package telegram

import (
	"context"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/require"
)

func TestUploadFromMessage(t *testing.T) {
	photo := &tgbotapi.Message{Photo: []tgbotapi.PhotoSize{
		{FileID: "small", FileSize: 10},
		{FileID: "large", FileSize: 1000},
	}}
	up := uploadFromMessage(photo)
	require.Equal(t, uploadImage, up.kind)
	require.Equal(t, "large", up.fileID)
	require.Equal(t, 1000, up.size)

	imageDoc := &tgbotapi.Message{Document: &tgbotapi.Document{FileID: "doc", FileName: "golden.png", MimeType: "image/png"}}
	require.Equal(t, uploadImage, uploadFromMessage(imageDoc).kind)

	manifestDoc := &tgbotapi.Message{Document: &tgbotapi.Document{FileID: "m", FileName: "parts.yaml", MimeType: "application/x-yaml"}}
	up = uploadFromMessage(manifestDoc)
	require.Equal(t, uploadManifest, up.kind)
	require.Equal(t, "parts.yaml", up.fileName)

	require.Equal(t, uploadNone, uploadFromMessage(&tgbotapi.Message{Text: "hi"}).kind)
}

func TestHandleMessageWithoutSender(t *testing.T) {
	b := &Bot{}
	post := &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: -100}, Text: "news"}
	require.NotPanics(t, func() { b.handleMessage(context.Background(), post) })
}
