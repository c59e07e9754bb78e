package web

import (
	"encoding/json"
	"net/http"

	"github.com/kataras/iris/v12"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"wasteland-companion/internal/scripts"
)

func addRouteScripts(r *Router) []*Route {
	var tempRoutes []*Route

	tempRoutes = append(tempRoutes, &Route{
		Name: "Get Scripts",
		Path: "/scripts",
		JWT:  true,
		Func: func(ctx iris.Context) error {
			ctx.ContentType("application/json")
			t := GetClaims(ctx)
			_, err := t.GetUser(r.DB)
			if err != nil {
				ctx.StatusCode(http.StatusUnauthorized)
				return nil
			}

			all, err := scripts.GetAllScripts(r.DB)
			if err != nil {
				ctx.StatusCode(http.StatusInternalServerError)
				return nil
			}

			return ctx.JSON(all)
		},
		Type: RouteType_GET,
	})

	tempRoutes = append(tempRoutes, &Route{
		Name: "New Script",
		Path: "/scripts/new",
		JWT:  true,
		Func: func(ctx iris.Context) error {
			ctx.ContentType("application/json")
			t := GetClaims(ctx)
			user, err := t.GetUser(r.DB)
			if err != nil || !user.Admin {
				ctx.StatusCode(http.StatusUnauthorized)
				return nil
			}

			var s scripts.Script
			raw, err := ctx.GetBody()
			if err != nil {
				ctx.StatusCode(http.StatusBadRequest)
				return nil
			}
			err = json.Unmarshal(raw, &s)
			if err != nil || s.Name == "" {
				ctx.StatusCode(http.StatusBadRequest)
				return nil
			}

			err = s.Create(r.DB)
			if err != nil {
				ctx.StatusCode(http.StatusInternalServerError)
				return nil
			}

			return ctx.JSON(s)
		},
		Type: RouteType_POST,
	})

	tempRoutes = append(tempRoutes, &Route{
		Name: "Update Script",
		Path: "/scripts/update/{scriptid}",
		JWT:  true,
		Func: func(ctx iris.Context) error {
			ctx.ContentType("application/json")
			t := GetClaims(ctx)
			user, err := t.GetUser(r.DB)
			if err != nil || !user.Admin {
				ctx.StatusCode(http.StatusUnauthorized)
				return nil
			}

			sID, err := primitive.ObjectIDFromHex(ctx.Params().Get("scriptid"))
			if err != nil {
				ctx.StatusCode(http.StatusBadRequest)
				return nil
			}

			var body scripts.Script
			raw, err := ctx.GetBody()
			if err != nil {
				ctx.StatusCode(http.StatusBadRequest)
				return nil
			}
			err = json.Unmarshal(raw, &body)
			if err != nil || body.Name == "" {
				ctx.StatusCode(http.StatusBadRequest)
				return nil
			}

			s := scripts.Script{ID: sID}
			err = s.Update(r.DB, body.Name, body.Description, body.Path)
			if err != nil {
				ctx.StatusCode(http.StatusInternalServerError)
				return nil
			}

			return ctx.JSON(s)
		},
		Type: RouteType_POST,
	})

	tempRoutes = append(tempRoutes, &Route{
		Name: "Delete Script",
		Path: "/scripts/{scriptid}",
		JWT:  true,
		Func: func(ctx iris.Context) error {
			t := GetClaims(ctx)
			user, err := t.GetUser(r.DB)
			if err != nil || !user.Admin {
				ctx.StatusCode(http.StatusUnauthorized)
				return nil
			}

			sID, err := primitive.ObjectIDFromHex(ctx.Params().Get("scriptid"))
			if err != nil {
				ctx.StatusCode(http.StatusBadRequest)
				return nil
			}

			err = scripts.DeleteScript(r.DB, sID)
			if err != nil {
				ctx.StatusCode(http.StatusInternalServerError)
				return nil
			}

			ctx.StatusCode(http.StatusOK)
			return nil
		},
		Type: RouteType_DELETE,
	})

	return tempRoutes
}
