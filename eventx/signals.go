package eventx

import (
	"os"
	"os/signal"
	"sync"
)

// NotifySignals bridges OS signals into events on the given [Emitter].
// Each received signal is emitted as an event with the signal as its payload.
// The returned stop function ends signal delivery and may be called more than once.
func NotifySignals(em *Emitter, event string, signals ...os.Signal) (stop func()) {
	if len(signals) == 0 {
		panic("no signals passed to NotifySignals")
	}
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, signals...)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case sig := <-sigs:
				em.Emit(event, sig)
			case <-done:
				return
			}
		}
	}()
	var once sync.Once
	return func() {
		once.Do(func() {
			signal.Stop(sigs)
			close(done)
		})
	}
}
