package workers

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	mocks "github.com/cbodonnell/savestate/mocks/github.com/cbodonnell/savestate/pkg/repositories"
	"github.com/cbodonnell/savestate/pkg/codec"
	"github.com/cbodonnell/savestate/pkg/ident"
	"github.com/cbodonnell/savestate/pkg/log"
	"github.com/cbodonnell/savestate/pkg/repositories/models"
	"github.com/cbodonnell/savestate/pkg/slot"
	"github.com/cbodonnell/savestate/pkg/variant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testSlot() *slot.GameSlot {
	s := slot.New(7, 2)
	s.SetPrettyName("Harbor")
	s.SetSavedAt(time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC))
	owner := ident.FromName("player")
	s.AddOrReplace(slot.NewSaveKey(owner, "gold"), slot.NewSavedVariable(owner, "gold", variant.Wrap("gold", variant.New(250))))
	return s
}

func TestNewSlotRecord(t *testing.T) {
	c := codec.NewJSONCodec()
	record, err := NewSlotRecord(c, testSlot())
	require.NoError(t, err)

	assert.Equal(t, 7, record.SlotID)
	assert.Equal(t, "Harbor", record.PrettyName)
	assert.Equal(t, 2, record.Version)
	assert.Equal(t, time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC).UnixMilli(), record.SavedAt)
	assert.Equal(t, codec.FormatJSON, record.Format)

	doc, err := c.Decode(record.Data)
	require.NoError(t, err)
	assert.Equal(t, 7, doc.ID)
	assert.Len(t, doc.Variables, 1)
}

func TestSaveWorker_Start(t *testing.T) {
	tests := []struct {
		name    string
		saveErr error
	}{
		{name: "saved"},
		{name: "repository error", saveErr: errors.New("disk full")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepository := mocks.NewRepository(t)
			mockRepository.EXPECT().
				SaveSlot(mock.Anything, mock.MatchedBy(func(r *models.SlotRecord) bool {
					return r.SlotID == 7 && r.Format == codec.FormatYAML && len(r.Data) > 0
				})).
				Return(tt.saveErr).
				Once()

			saveChan := make(chan SaveRequest)
			w := NewSaveWorker(NewSaveWorkerOptions{
				Repository: mockRepository,
				Codec:      codec.NewYAMLCodec(),
				SaveChan:   saveChan,
			})

			ctx, cancel := context.WithCancel(context.Background())
			stopped := make(chan struct{})
			go func() {
				w.Start(ctx)
				close(stopped)
			}()

			done := make(chan error, 1)
			saveChan <- SaveRequest{Slot: testSlot(), Done: done}

			select {
			case err := <-done:
				if tt.saveErr != nil {
					assert.ErrorIs(t, err, tt.saveErr)
				} else {
					assert.NoError(t, err)
				}
			case <-time.After(time.Second):
				t.Fatal("timed out waiting for save")
			}

			cancel()
			<-stopped
		})
	}
}

func TestSaveWorker_logsWithComponent(t *testing.T) {
	mockRepository := mocks.NewRepository(t)
	mockRepository.EXPECT().SaveSlot(mock.Anything, mock.Anything).Return(errors.New("disk full")).Once()

	buf := &bytes.Buffer{}
	saveChan := make(chan SaveRequest)
	w := NewSaveWorker(NewSaveWorkerOptions{
		Repository: mockRepository,
		Codec:      codec.NewJSONCodec(),
		SaveChan:   saveChan,
		Logger:     log.New(buf, "", 0, log.LogLevelDebug).Named("save-worker"),
	})

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(stopped)
	}()

	done := make(chan error, 1)
	saveChan <- SaveRequest{Slot: testSlot(), Done: done}
	require.Error(t, <-done)
	cancel()
	<-stopped

	assert.Contains(t, buf.String(), `"component":"save-worker"`)
	assert.Contains(t, buf.String(), "Failed to save slot 7: disk full")
}
