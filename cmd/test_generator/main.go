package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"portfolio-customizer/internal/adapter/repository"
	"portfolio-customizer/internal/editor"
	"portfolio-customizer/internal/model"
	"portfolio-customizer/internal/usecase"
	ai "portfolio-customizer/pkg/ai"
	"portfolio-customizer/pkg/extract"
	"portfolio-customizer/pkg/infrastructure"

	"github.com/google/uuid"
)

// Runs a full generate, edit, save and export cycle against a mock
// ai-service, with the real renderer and an in-memory store.

const mockPage = `<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>Test User</title>
<style>.grid{display:grid}</style></head>
<body>
<nav id="navbar"><a href="#about">About</a><a href="#projects">Projects</a></nav>
<section id="home"><h1>Test User</h1><p>Engineer</p></section>
<section id="about"><p>Builds data pipelines in Go.</p></section>
<section id="projects"><div class="grid gap-4"><div class="card"><h3>P1</h3></div></div></section>
<section id="skills"><span>Go</span><span>Postgres</span></section>
<section id="contact"><a href="https://github.com/test-user">GitHub</a></section>
</body>
</html>`

func startMockAI(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/chat", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var req map[string]interface{}
		_ = json.Unmarshal(body, &req)
		input, _ := req["input"].(string)
		if input == "" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		out := "```html\n" + mockPage + "\n```"
		if !strings.Contains(input, "Resume Content") {
			out = ""
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"agent": "mock", "output": out})
	})

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("mock ai server failed: %v", err)
		}
	}()
	return srv
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	srv := startMockAI("127.0.0.1:8000")
	defer srv.Shutdown(context.Background())

	svc := usecase.NewService(
		repository.NewMemoryRepo(),
		ai.NewClientWithLanguage("http://127.0.0.1:8000", "english", logger),
		infrastructure.NewChromedpRenderer(os.Getenv("CHROME_PATH"), logger),
		extract.New(10<<20, logger),
		usecase.WithLogger(logger),
		usecase.WithRandomTheme(true),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	res, err := svc.Generate(ctx, model.GenerateRequest{ResumeText: "Test User\nEngineer\nGo, Postgres", UserID: "test-user"})
	if err != nil {
		fmt.Printf("Generate failed: %v\n", err)
		return
	}
	fmt.Printf("Generated session %s with theme %q, missing sections: %v\n", res.SessionID, res.Theme, res.Missing)

	sid, err := uuid.Parse(res.SessionID)
	if err != nil {
		fmt.Printf("bad session id: %v\n", err)
		return
	}

	v, err := svc.Edit(sid, func(e *editor.Editor) error {
		if err := e.Click(editor.ParsePath("body > section#home > h1")); err != nil {
			return err
		}
		if err := e.SetStyle("fontSize", "48px"); err != nil {
			return err
		}
		if err := e.Select(editor.ParsePath("body > section#projects > div.grid")); err != nil {
			return err
		}
		if err := e.CloneLastChild(); err != nil {
			return err
		}
		return e.InsertTemplate(editor.TemplateProject)
	})
	if err != nil {
		fmt.Printf("Edit failed: %v\n", err)
		return
	}
	fmt.Printf("After edits: history=%d cursor=%d canUndo=%v\n", v.HistoryLen, v.Cursor, v.CanUndo)

	v, err = svc.Edit(sid, func(e *editor.Editor) error {
		_, err := e.Undo()
		return err
	})
	if err != nil {
		fmt.Printf("Undo failed: %v\n", err)
		return
	}
	fmt.Printf("After undo: cursor=%d canRedo=%v\n", v.Cursor, v.CanRedo)

	p, err := svc.Save(ctx, sid, "test-user")
	if err != nil {
		fmt.Printf("Save failed: %v\n", err)
		return
	}
	fmt.Printf("Saved portfolio %s (%q)\n", p.ID, p.Title)

	minified, err := svc.ExportHTML(sid, true)
	if err != nil {
		fmt.Printf("HTML export failed: %v\n", err)
		return
	}
	fmt.Printf("Minified export: %d bytes (snapshot %d bytes)\n", len(minified), len(v.HTML))

	pdf, err := svc.ExportPDF(ctx, sid)
	if err != nil {
		fmt.Printf("PDF export failed (is Chrome installed?): %v\n", err)
		return
	}
	fmt.Printf("PDF export: %d bytes\n", len(pdf))
}
