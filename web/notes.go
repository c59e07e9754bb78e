package web

import (
	"encoding/json"
	"net/http"

	"github.com/kataras/iris/v12"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"wasteland-companion/internal/notes"
)

func addRouteNotes(r *Router) []*Route {
	var tempRoutes []*Route

	tempRoutes = append(tempRoutes, &Route{
		Name: "Get Notes",
		Path: "/notes",
		JWT:  true,
		Func: func(ctx iris.Context) error {
			ctx.ContentType("application/json")
			t := GetClaims(ctx)
			_, err := t.GetUser(r.DB)
			if err != nil {
				ctx.StatusCode(http.StatusUnauthorized)
				return nil
			}

			all, err := notes.GetAllNotes(r.DB)
			if err != nil {
				ctx.StatusCode(http.StatusInternalServerError)
				return nil
			}

			return ctx.JSON(all)
		},
		Type: RouteType_GET,
	})

	tempRoutes = append(tempRoutes, &Route{
		Name: "New Note",
		Path: "/notes/new",
		JWT:  true,
		Func: func(ctx iris.Context) error {
			ctx.ContentType("application/json")
			t := GetClaims(ctx)
			_, err := t.GetUser(r.DB)
			if err != nil {
				ctx.StatusCode(http.StatusUnauthorized)
				return nil
			}

			var n notes.Note
			raw, err := ctx.GetBody()
			if err != nil {
				ctx.StatusCode(http.StatusBadRequest)
				return nil
			}
			err = json.Unmarshal(raw, &n)
			if err != nil || n.Title == "" {
				ctx.StatusCode(http.StatusBadRequest)
				return nil
			}

			err = n.Create(r.DB)
			if err != nil {
				ctx.StatusCode(http.StatusInternalServerError)
				return nil
			}

			return ctx.JSON(n)
		},
		Type: RouteType_POST,
	})

	tempRoutes = append(tempRoutes, &Route{
		Name: "Update Note",
		Path: "/notes/update/{noteid}",
		JWT:  true,
		Func: func(ctx iris.Context) error {
			ctx.ContentType("application/json")
			t := GetClaims(ctx)
			_, err := t.GetUser(r.DB)
			if err != nil {
				ctx.StatusCode(http.StatusUnauthorized)
				return nil
			}

			nID, err := primitive.ObjectIDFromHex(ctx.Params().Get("noteid"))
			if err != nil {
				ctx.StatusCode(http.StatusBadRequest)
				return nil
			}

			var body notes.Note
			raw, err := ctx.GetBody()
			if err != nil {
				ctx.StatusCode(http.StatusBadRequest)
				return nil
			}
			err = json.Unmarshal(raw, &body)
			if err != nil || body.Title == "" {
				ctx.StatusCode(http.StatusBadRequest)
				return nil
			}

			n := notes.Note{ID: nID}
			err = n.Update(r.DB, body.Title, body.Body)
			if err != nil {
				ctx.StatusCode(http.StatusInternalServerError)
				return nil
			}

			return ctx.JSON(n)
		},
		Type: RouteType_POST,
	})

	tempRoutes = append(tempRoutes, &Route{
		Name: "Delete Note",
		Path: "/notes/{noteid}",
		JWT:  true,
		Func: func(ctx iris.Context) error {
			t := GetClaims(ctx)
			_, err := t.GetUser(r.DB)
			if err != nil {
				ctx.StatusCode(http.StatusUnauthorized)
				return nil
			}

			nID, err := primitive.ObjectIDFromHex(ctx.Params().Get("noteid"))
			if err != nil {
				ctx.StatusCode(http.StatusBadRequest)
				return nil
			}

			err = notes.DeleteNote(r.DB, nID)
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
