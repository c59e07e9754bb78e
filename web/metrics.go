package web

import (
	"net/http"

	"github.com/kataras/iris/v12"
	"wasteland-companion/internal/metrics"
)

func addRouteMetrics(r *Router) []*Route {
	var tempRoutes []*Route

	tempRoutes = append(tempRoutes, &Route{
		Name: "Get System Metrics",
		Path: "/metrics/system",
		JWT:  true,
		Func: func(ctx iris.Context) error {
			ctx.ContentType("application/json")
			t := GetClaims(ctx)
			_, err := t.GetUser(r.DB)
			if err != nil {
				ctx.StatusCode(http.StatusUnauthorized)
				return nil
			}

			return ctx.JSON(metrics.Collect())
		},
		Type: RouteType_GET,
	})

	tempRoutes = append(tempRoutes, &Route{
		Name: "Get Service Status",
		Path: "/metrics/services",
		JWT:  true,
		Func: func(ctx iris.Context) error {
			ctx.ContentType("application/json")
			t := GetClaims(ctx)
			_, err := t.GetUser(r.DB)
			if err != nil {
				ctx.StatusCode(http.StatusUnauthorized)
				return nil
			}

			return ctx.JSON(metrics.CheckServices(metrics.WatchedServices()))
		},
		Type: RouteType_GET,
	})

	return tempRoutes
}
