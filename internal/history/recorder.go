package history

import (
	"context"
	"time"

	"github.com/tessro/dial/internal/core"
)

// Recorder turns session snapshots into plays. A play starts when a
// station is first confirmed playing and ends when the session moves to
// another station or goes idle. Pausing does not end a play.
type Recorder struct {
	store     *Store
	sessionID string

	current int64
	station string
}

// NewRecorder returns a recorder writing to store.
func NewRecorder(store *Store, sessionID string) *Recorder {
	return &Recorder{store: store, sessionID: sessionID}
}

// Observe is a session observer.
func (r *Recorder) Observe(snap core.Snapshot) {
	switch {
	case snap.Station == nil:
		r.finish(snap.At)
	case snap.Station.ID != r.station:
		r.finish(snap.At)
		if snap.IsPlaying {
			r.start(snap)
		}
	case snap.IsPlaying && r.current == 0:
		r.start(snap)
	}
}

// Close ends the play in progress, if any.
func (r *Recorder) Close() {
	r.finish(time.Now())
}

func (r *Recorder) start(snap core.Snapshot) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	st := snap.Station
	id, err := r.store.Start(ctx, Play{
		SessionID:   r.sessionID,
		StationID:   st.ID,
		StationName: st.Name,
		Country:     st.Country,
		Language:    st.Language,
		StreamURL:   st.StreamURL,
		StartedAt:   snap.At,
	})
	if err != nil {
		r.store.log.WithError(err).Warn("could not record play")
		return
	}
	r.current = id
	r.station = st.ID
}

func (r *Recorder) finish(at time.Time) {
	if r.current == 0 {
		r.station = ""
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := r.store.Finish(ctx, r.current, at); err != nil {
		r.store.log.WithError(err).Warn("could not finish play")
	}
	r.current = 0
	r.station = ""
}
