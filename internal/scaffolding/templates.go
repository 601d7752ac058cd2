package scaffolding

import (
	"strconv"
	"text/template"
)

var templateFuncs = template.FuncMap{
	"quote": strconv.Quote,
}

var controllerTemplate = template.Must(template.New("controller").Funcs(templateFuncs).Parse(`package {{.Package}}

import "{{.Runtime}}"

// {{.Action}} renders the {{.View}} view.
//
//mvc:http_url({{quote .Path}}), http_get
func {{.Action}}() (mvc.ViewResult, error) {
	return mvc.View(), nil
}
`))

var viewTemplate = template.Must(template.New("view").Parse(`{{if .Model}}#[model {{.Model}}]
{{end}}<!DOCTYPE html>
<html>
<head>
	<title>{{.Title}}</title>
</head>
<body>
	<h1>{{.Title}}</h1>
{{- if .Model}}
	<p>#[model]</p>
{{- end}}
</body>
</html>
`))

var mainTemplate = template.Must(template.New("main").Parse(`package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := Run()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Printf("listening on %s", server.Addr())
	if err := server.ListenAndServe(); err != nil {
		log.Fatal(err)
	}
}
`))

var configTemplate = template.Must(template.New("config").Parse(`# mvcgen configuration
root_dir: .
controller_dir: {{.ControllerDir}}
view_dir: {{.ViewDir}}
server:
  host: localhost
  port: 8181
`))
