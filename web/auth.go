package web

import (
	"encoding/json"
	"net/http"

	"github.com/kataras/iris/v12"
	"wasteland-companion/internal/auth"
)

func addRouteAuth(r *Router) []*Route {
	var tempRoutes []*Route

	tempRoutes = append(tempRoutes, &Route{
		Name: "Login",
		Path: "/auth/login",
		JWT:  false,
		Func: func(ctx iris.Context) error {
			ctx.ContentType("application/json")

			var l auth.Login
			body, err := ctx.GetBody()
			if err != nil {
				ctx.StatusCode(http.StatusBadRequest)
				return nil
			}
			err = json.Unmarshal(body, &l)
			if err != nil {
				ctx.StatusCode(http.StatusBadRequest)
				return nil
			}

			t, err := l.Login(r.DB)
			if err != nil {
				ctx.StatusCode(http.StatusUnauthorized)
				return nil
			}

			_, err = ctx.Write([]byte(t))
			return err
		},
		Type: RouteType_POST,
	})

	tempRoutes = append(tempRoutes, &Route{
		Name: "Register",
		Path: "/auth/register",
		JWT:  false,
		Func: func(ctx iris.Context) error {
			ctx.ContentType("application/json")

			var reg auth.Register
			body, err := ctx.GetBody()
			if err != nil {
				ctx.StatusCode(http.StatusBadRequest)
				return nil
			}
			err = json.Unmarshal(body, &reg)
			if err != nil {
				ctx.StatusCode(http.StatusBadRequest)
				return nil
			}

			t, err := reg.Register(r.DB)
			if err != nil {
				ctx.StatusCode(http.StatusConflict)
				return err
			}

			_, err = ctx.Write([]byte(t))
			return err
		},
		Type: RouteType_POST,
	})

	tempRoutes = append(tempRoutes, &Route{
		Name: "Logout",
		Path: "/auth/logout",
		JWT:  true,
		Func: func(ctx iris.Context) error {
			t := GetClaims(ctx)
			err := t.Delete(r.DB)
			if err != nil {
				ctx.StatusCode(http.StatusInternalServerError)
				return nil
			}

			ctx.StatusCode(http.StatusOK)
			return nil
		},
		Type: RouteType_POST,
	})

	tempRoutes = append(tempRoutes, &Route{
		Name: "Get Profile",
		Path: "/auth/profile",
		JWT:  true,
		Func: func(ctx iris.Context) error {
			ctx.ContentType("application/json")
			t := GetClaims(ctx)
			user, err := t.GetUser(r.DB)
			if err != nil {
				ctx.StatusCode(http.StatusUnauthorized)
				return nil
			}

			return ctx.JSON(user)
		},
		Type: RouteType_GET,
	})

	return tempRoutes
}
