// Command statecraft-demo runs a small traffic-light statechart under an
// AsyncRunner and a TimerEventSource, printing the active configuration after
// each cycle and a DOT rendering once the demo completes. Adapted from the teacher's cmd/demo,
// which wired its Machine to a JSONPersister/ChannelPublisher/Visualizer
// trio — here the persister is dropped (persistence is out of scope) and the
// publisher/visualizer roles are filled by WithAsyncObserver and
// internal/dot.Render.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/comalice/statecraft"
	"github.com/comalice/statecraft/internal/dot"
	"github.com/comalice/statecraft/internal/extensibility"
)

func main() {
	states := statecraft.NewBuilder().
		State("traffic").
		State("red").Transition("TIMER", "green").Up().
		State("green").Transition("TIMER", "yellow").Up().
		State("yellow").Transition("TIMER", "red").Up().
		Up().
		Build()

	logger := log.New(os.Stdout, "", log.LstdFlags)
	actions := map[statecraft.ActionName]statecraft.Action{
		"announce": extensibility.WrapLogging(logger, "announce", func(eng *statecraft.Engine, event *statecraft.Event) {
			name, _ := eng.CurrentState()
			fmt.Printf("  -> entered %s\n", name)
		}),
	}
	states[0].Children[0].Entries = []statecraft.ActionName{"announce"}
	states[0].Children[1].Entries = []statecraft.ActionName{"announce"}
	states[0].Children[2].Entries = []statecraft.ActionName{"announce"}

	engine, err := statecraft.NewEngine(states, actions, nil)
	if err != nil {
		log.Fatalf("build engine: %v", err)
	}

	cycles := 0
	runner := statecraft.NewAsyncRunner(statecraft.WithAsyncObserver(func(eng *statecraft.Engine, event statecraft.Event) {
		cycles++
		fmt.Printf("\n--- Cycle %d (%s) ---\n", cycles, event.Name)
		fmt.Println("Current state:", eng.Configuration())
	}))

	source := extensibility.NewTimerEventSource("TIMER", 2*time.Second)
	defer source.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case event := <-source.Events():
			runner.Register(engine, event)
			if cycles >= 12 {
				fmt.Println("\nDemo complete after 12 cycles.")
				fmt.Println("DOT:\n" + dot.Render(states))
				ctx, cancel := context.WithTimeout(context.Background(), time.Second)
				runner.Close(ctx)
				cancel()
				return
			}
		case <-sig:
			fmt.Println("\nShutting down gracefully...")
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			runner.Close(ctx)
			cancel()
			return
		}
	}
}
