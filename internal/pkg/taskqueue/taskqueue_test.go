package taskqueue

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskJSONRoundTrip(t *testing.T) {
	payload, err := json.Marshal(CertificatePDFPayload{CertificateID: 17})
	require.NoError(t, err)

	task := Task{
		ID:         "a1b2c3",
		Kind:       KindCertificatePDF,
		Payload:    payload,
		EnqueuedAt: time.Date(2025, 8, 15, 9, 0, 0, 0, time.UTC),
	}

	data, err := json.Marshal(task)
	require.NoError(t, err)

	var decoded Task
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, task.ID, decoded.ID)
	assert.Equal(t, task.Kind, decoded.Kind)
	assert.True(t, task.EnqueuedAt.Equal(decoded.EnqueuedAt))

	var certPayload CertificatePDFPayload
	require.NoError(t, decoded.DecodePayload(&certPayload))
	assert.Equal(t, int64(17), certPayload.CertificateID)
}

func TestDecodePayloadKinds(t *testing.T) {
	t.Run("receipt", func(t *testing.T) {
		raw, err := json.Marshal(ReceiptPDFPayload{ReceiptID: 5})
		require.NoError(t, err)

		task := Task{Kind: KindReceiptPDF, Payload: raw}
		var p ReceiptPDFPayload
		require.NoError(t, task.DecodePayload(&p))
		assert.Equal(t, int64(5), p.ReceiptID)
	})

	t.Run("reminder", func(t *testing.T) {
		raw, err := json.Marshal(ReminderEmailPayload{ReminderID: 9})
		require.NoError(t, err)

		task := Task{Kind: KindReminderEmail, Payload: raw}
		var p ReminderEmailPayload
		require.NoError(t, task.DecodePayload(&p))
		assert.Equal(t, int64(9), p.ReminderID)
	})
}

func TestDecodePayloadInvalidJSON(t *testing.T) {
	task := Task{Kind: KindCertificatePDF, Payload: json.RawMessage(`{"certificateId":`)}

	var p CertificatePDFPayload
	err := task.DecodePayload(&p)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), KindCertificatePDF)
}
