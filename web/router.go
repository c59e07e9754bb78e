package web

import (
	"github.com/iris-contrib/middleware/cors"
	"github.com/kataras/iris/v12"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"wasteland-companion/workers"
)

type Router struct {
	App     *iris.Application
	DB      *mongo.Database
	Monitor *workers.Monitor
	Routes  []*Route
}

type Route struct {
	Name string
	Path string
	JWT  bool
	Type RouteType
	Func func(ctx iris.Context) error
}

type RouteType string

const (
	RouteType_GET    RouteType = "GET"
	RouteType_POST   RouteType = "POST"
	RouteType_DELETE RouteType = "DELETE"
)

func NewRouter(mongoDB *mongo.Database, monitor *workers.Monitor) *Router {
	router := &Router{
		App:     iris.New(),
		DB:      mongoDB,
		Monitor: monitor,
	}
	return router
}

func (r *Router) Init() {
	r.App.UseRouter(cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	r.App.Use(ProxyIPMiddleware)

	r.Routes = append(r.Routes, addRouteAuth(r)...)
	r.Routes = append(r.Routes, addRouteDevices(r)...)
	r.Routes = append(r.Routes, addRouteMetrics(r)...)
	r.Routes = append(r.Routes, addRouteScripts(r)...)
	r.Routes = append(r.Routes, addRouteNotes(r)...)

	log.Info("Loading all routes...")
	log.Infof("Found %d route(s).", len(r.Routes))
	if len(r.Routes) > 0 {
		r.LoadRoutes(false)

		log.Info("Enabling JWT Middleware...")
		r.App.Use(VerifySession())

		r.LoadRoutes(true)
	} else {
		log.Error("No routes found.")
	}
}

func (r *Router) LoadRoutes(JWT bool) {
	for n := range r.Routes {
		v := r.Routes[n]

		if v.JWT != JWT {
			continue
		}

		log.Infof("Loaded route: %s (%s) - %s", v.Name, v.Type, v.Path)

		handler := func(ctx iris.Context) {
			err := v.Func(ctx)
			if err != nil {
				log.Error(err)
				return
			}
		}

		switch v.Type {
		case RouteType_GET:
			r.App.Get(v.Path, handler)
		case RouteType_POST:
			r.App.Post(v.Path, handler)
		case RouteType_DELETE:
			r.App.Delete(v.Path, handler)
		}
	}
}

func (r *Router) Listen(host string) {
	err := r.App.Listen(host)
	if err != nil {
		log.Error(err)
		return
	}
}
