package whatsapp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mau.fi/whatsmeow/types"
)

func TestSendJIDTranslatesLegacyServer(t *testing.T) {
	// Chat IDs carry the legacy c.us suffix; sends must go to the modern
	// user server or the session client rejects them.
	jid, err := sendJID(ChatID("0300-1234567"))
	require.NoError(t, err)
	assert.Equal(t, "03001234567", jid.User)
	assert.Equal(t, types.DefaultUserServer, jid.Server)
}

func TestSendJIDKeepsModernServer(t *testing.T) {
	jid, err := sendJID("15551234567@" + types.DefaultUserServer)
	require.NoError(t, err)
	assert.Equal(t, "15551234567", jid.User)
	assert.Equal(t, types.DefaultUserServer, jid.Server)
}
