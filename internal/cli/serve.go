package cli

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/matzehuels/clusterviz/pkg/errors"
	"github.com/matzehuels/clusterviz/pkg/observability"
	"github.com/matzehuels/clusterviz/pkg/pipeline"
	"github.com/matzehuels/clusterviz/pkg/render/sink"
)

const shutdownTimeout = 5 * time.Second

// serveCommand creates the serve command, a local viewer for one graph.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr       string
		formatsStr string
		plotlySrc  string
		flags      graphFlags
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "serve NODES.csv EDGES.csv | serve GRAPH.json",
		Short: "Serve the interactive views over HTTP",
		Long: `Serve the interactive views over HTTP.

The graph is processed once at startup. The server then offers:

  /                      redirect to the primary view
  /view/{view}           interactive HTML for the 3d or 2d view
  /api/scenes/{view}     scene JSON
  /api/components        component colors mapping
  /files/{name}          rendered artifacts, e.g. graph_2d.svg
  /healthz               liveness check`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			opts.PlotlySrc = plotlySrc
			flags.apply(&opts)
			cfg, err := c.loadConfig(&opts)
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Serve.Addr
			}
			if addr == "" {
				addr = defaultAddr
			}
			if err := errors.ValidateListenAddr(addr); err != nil {
				return err
			}
			return c.runServe(cmd.Context(), args, opts, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default "+defaultAddr+")")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "formats to pre-render under /files (default html)")
	cmd.Flags().StringVar(&plotlySrc, "plotly-src", "", "plotly.js URL for the viewer pages (default "+sink.PlotlyCDN+")")
	flags.bind(cmd, &opts)

	return cmd
}

func (c *CLI) runServe(ctx context.Context, inputs []string, opts pipeline.Options, addr string) error {
	result, err := c.newRunner().Run(ctx, opts, inputs...)
	if err != nil {
		return err
	}
	for _, w := range result.Warnings {
		printWarning("%s", w)
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidOption, err, "listen on %s", addr)
	}
	srv := &http.Server{
		Handler:           newViewerRouter(result, opts.PlotlySrc, c.Logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	printSuccess("Serving %d components", result.Stats.ComponentCount)
	printKeyValue("URL", StyleLink.Render("http://"+ln.Addr().String()+"/"))
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.Stats.ComponentCount)

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	select {
	case err := <-errc:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		c.Logger.Info("shutting down viewer")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// =============================================================================
// Router
// =============================================================================

// viewer serves one pipeline result.
type viewer struct {
	result    *pipeline.Result
	plotlySrc string
	files     map[string]pipeline.Artifact
}

// newViewerRouter builds the HTTP routes for result. An empty plotlySrc
// serves pages that load plotly.js from the CDN.
func newViewerRouter(result *pipeline.Result, plotlySrc string, logger *log.Logger) http.Handler {
	v := &viewer{result: result, plotlySrc: plotlySrc, files: make(map[string]pipeline.Artifact)}
	for _, a := range result.Artifacts {
		v.files[a.Path(pipeline.DefaultOutputBase)] = a
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(observe(logger))

	r.Get("/", v.index)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprintln(w, "ok")
	})
	r.Get("/view/{view}", v.page)
	r.Route("/api", func(r chi.Router) {
		r.Get("/scenes/{view}", v.scene)
		r.Get("/components", v.components)
	})
	r.Get("/files/{name}", v.file)
	return r
}

// observe reports every request to the server hooks and attaches the
// logger to the request context.
func observe(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			hooks := observability.Server()
			ctx := withLogger(r.Context(), logger.With("req", middleware.GetReqID(r.Context())))
			hooks.OnRequest(ctx, r.Method, r.URL.Path)

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			hooks.OnResponse(ctx, r.Method, r.URL.Path, status, time.Since(start))
		})
	}
}

func (v *viewer) index(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/view/"+v.result.Scenes[0].Name, http.StatusFound)
}

func (v *viewer) page(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "view")
	s, ok := v.result.Scene(name)
	if !ok {
		http.Error(w, fmt.Sprintf("unknown view %q", name), http.StatusNotFound)
		return
	}
	data, err := sink.RenderHTML(s,
		sink.WithTitle(fmt.Sprintf("%s (%s)", appName, name)),
		sink.WithPlotlySrc(v.plotlySrc))
	if err != nil {
		loggerFromContext(r.Context()).Error("render page", "view", name, "err", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(data)
}

func (v *viewer) scene(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "view")
	s, ok := v.result.Scene(name)
	if !ok {
		http.Error(w, fmt.Sprintf("unknown view %q", name), http.StatusNotFound)
		return
	}
	data, err := sink.RenderJSON(s, sink.WithJSONCompact())
	if err != nil {
		loggerFromContext(r.Context()).Error("render scene", "view", name, "err", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (v *viewer) components(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v.result.Scenes[0].Scene.Mapping); err != nil {
		loggerFromContext(r.Context()).Error("encode components", "err", err)
	}
}

func (v *viewer) file(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	a, ok := v.files[name]
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", contentType(a.Ext))
	w.Write(a.Data)
}

func contentType(ext string) string {
	switch ext {
	case "html":
		return "text/html; charset=utf-8"
	case "svg":
		return "image/svg+xml"
	case "png":
		return "image/png"
	case "pdf":
		return "application/pdf"
	case "json":
		return "application/json"
	default:
		return "text/plain; charset=utf-8"
	}
}
