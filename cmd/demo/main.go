package main

import (
	"fmt"
	"log"

	"tableflip.dev/cmdcenter/pkg/bus"
	"tableflip.dev/cmdcenter/pkg/engine"
	"tableflip.dev/cmdcenter/pkg/printers"
	"tableflip.dev/cmdcenter/pkg/store"
	"tableflip.dev/cmdcenter/pkg/task"
)

// Seeds the configured store with a handful of tasks and notifications.
func main() {
	cfg, err := store.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}
	s, err := store.Open(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close(s)

	e := engine.New(s, engine.Options{})
	if err := e.Load(); err != nil {
		log.Printf("starting empty: %v", err)
	}

	seed := []struct {
		text     string
		category task.Category
		priority task.Priority
		notes    string
	}{
		{"Ship release", task.CategoryDev, task.PriorityHigh, "cut the tag after CI is green"},
		{"Patch CVE-2025-1234", task.CategoryUrgent, task.PriorityCritical, ""},
		{"Read the raft paper", task.CategoryResearch, task.PriorityLow, ""},
		{"Book dentist", task.CategoryPersonal, task.PriorityMedium, ""},
	}
	for _, d := range seed {
		if _, err := e.CreateTask(d.text, d.category, d.priority, d.notes, nil); err != nil {
			log.Fatal(err)
		}
	}
	if _, err := e.BrainDump("- reply to recruiter\n- expense the conference\n"); err != nil {
		log.Fatal(err)
	}
	e.Bus().Publish(bus.AddTask{Text: "Review PR #42", Source: "demo"})
	e.Bus().Publish(bus.Notify{Title: "Nightly build failed", Message: "integration tests timed out", Type: "error", Source: "ci"})

	pp := printers.PrettyPrint{ShowID: true}
	pp.Tasks(e.Session(), e.Tasks(task.Filter{})...)
	pp.NewLine()
	pp.Notifications(e.Notifications()...)
	fmt.Println()

	if err := e.Close(); err != nil {
		log.Fatal(err)
	}
}
