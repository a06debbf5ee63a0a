// Package registry exposes site search to programs: a tool registry with
// the site tools (site_search, site_describe, site_categories and
// contact_submit), the MCP protocol served over stdio, HTTP and SSE, an
// MCP go-sdk server for SDK clients, and a small REST API.
//
// Example usage:
//
//	disc, _ := discovery.New(discovery.Options{})
//	reg := registry.New(registry.Config{
//	    ServerInfo: registry.ServerInfo{Name: "sitesearch", Version: "1.0.0"},
//	})
//	site := registry.Site{Discovery: disc, Submitter: contact.DelaySubmitter{}}
//	if err := registry.RegisterSiteTools(reg, site); err != nil {
//	    log.Fatal(err)
//	}
//
//	ctx := context.Background()
//	reg.Start(ctx)
//	defer reg.Stop()
//
//	registry.ServeStdio(ctx, reg)
//
// The same registry can be mounted on an HTTP server together with the
// REST API:
//
//	http.ListenAndServe(":8080", registry.Handler(reg, site))
package registry
