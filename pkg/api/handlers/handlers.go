package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/cbodonnell/savestate/pkg/codec"
	"github.com/cbodonnell/savestate/pkg/log"
	"github.com/cbodonnell/savestate/pkg/queue"
	"github.com/cbodonnell/savestate/pkg/repositories"
	"github.com/cbodonnell/savestate/pkg/session"
	"github.com/gorilla/mux"
)

// MaxPrettyNameLength bounds the name given to a slot through the API.
const MaxPrettyNameLength = 64

// Enqueuer hands commands to the session host.
type Enqueuer interface {
	Enqueue(cmd session.Command) error
}

func HandleListSlots(repository repositories.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slots, err := repository.ListSlots(r.Context())
		if err != nil {
			log.Error("failed to list slots: %v", err)
			http.Error(w, "Failed to list slots", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(slots); err != nil {
			log.Error("failed to encode slots: %v", err)
			http.Error(w, "Failed to encode slots", http.StatusInternalServerError)
			return
		}
	}
}

// HandleGetSlot writes the decoded slot as JSON.
func HandleGetSlot(repository repositories.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slotID, ok := parseSlotID(w, r)
		if !ok {
			return
		}

		record, err := repository.LoadSlot(r.Context(), slotID)
		if err != nil {
			writeRepositoryError(w, "load", slotID, err)
			return
		}

		c, err := codec.ForFormat(record.Format)
		if err != nil {
			log.Error("slot %d has unknown format: %v", slotID, err)
			http.Error(w, "Failed to decode slot", http.StatusInternalServerError)
			return
		}
		doc, err := c.Decode(record.Data)
		if err != nil {
			log.Error("failed to decode slot %d: %v", slotID, err)
			http.Error(w, "Failed to decode slot", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(doc); err != nil {
			log.Error("failed to encode slot %d: %v", slotID, err)
			http.Error(w, "Failed to encode slot", http.StatusInternalServerError)
			return
		}
	}
}

func HandleDeleteSlot(repository repositories.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slotID, ok := parseSlotID(w, r)
		if !ok {
			return
		}

		if err := repository.DeleteSlot(r.Context(), slotID); err != nil {
			writeRepositoryError(w, "delete", slotID, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// HandleSaveSlot asks the host to save the active slot. The save happens on
// the next tick, so the request is only accepted here.
func HandleSaveSlot(enqueuer Enqueuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.FormValue("name")
		if len(name) > MaxPrettyNameLength {
			http.Error(w, "Name must be at most 64 characters", http.StatusBadRequest)
			return
		}

		if err := enqueuer.Enqueue(session.SaveCommand{PrettyName: name}); err != nil {
			writeEnqueueError(w, err)
			return
		}

		w.WriteHeader(http.StatusAccepted)
	}
}

// HandleLoadSlot asks the host to continue a stored slot.
func HandleLoadSlot(repository repositories.Repository, enqueuer Enqueuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slotID, ok := parseSlotID(w, r)
		if !ok {
			return
		}

		if _, err := repository.LoadSlot(r.Context(), slotID); err != nil {
			writeRepositoryError(w, "load", slotID, err)
			return
		}

		if err := enqueuer.Enqueue(session.ContinueCommand{SlotID: slotID}); err != nil {
			writeEnqueueError(w, err)
			return
		}

		w.WriteHeader(http.StatusAccepted)
	}
}

func parseSlotID(w http.ResponseWriter, r *http.Request) (int, bool) {
	slotID, err := strconv.Atoi(mux.Vars(r)["slotID"])
	if err != nil || slotID < 0 {
		http.Error(w, "Invalid slot ID", http.StatusBadRequest)
		return 0, false
	}
	return slotID, true
}

func writeRepositoryError(w http.ResponseWriter, op string, slotID int, err error) {
	if repositories.IsNotFound(err) {
		http.Error(w, "Slot not found", http.StatusNotFound)
		return
	}
	log.Error("failed to %s slot %d: %v", op, slotID, err)
	http.Error(w, "Failed to "+op+" slot", http.StatusInternalServerError)
}

func writeEnqueueError(w http.ResponseWriter, err error) {
	if errors.Is(err, queue.ErrQueueFull) {
		http.Error(w, "Host is busy", http.StatusServiceUnavailable)
		return
	}
	log.Error("failed to enqueue command: %v", err)
	http.Error(w, "Failed to enqueue command", http.StatusInternalServerError)
}
