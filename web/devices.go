package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/kataras/iris/v12"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"wasteland-companion/internal/device"
)

type deviceBody struct {
	Name        string `json:"name"`
	IPAddress   string `json:"ipAddress"`
	MACAddress  string `json:"macAddress"`
	Description string `json:"description"`
}

func addRouteDevices(r *Router) []*Route {
	var tempRoutes []*Route

	tempRoutes = append(tempRoutes, &Route{
		Name: "Get Devices",
		Path: "/devices",
		JWT:  true,
		Func: func(ctx iris.Context) error {
			ctx.ContentType("application/json")
			t := GetClaims(ctx)
			_, err := t.GetUser(r.DB)
			if err != nil {
				ctx.StatusCode(http.StatusUnauthorized)
				return nil
			}

			devices, err := device.GetAllDevices(r.DB)
			if err != nil {
				ctx.StatusCode(http.StatusInternalServerError)
				return nil
			}

			return ctx.JSON(devices)
		},
		Type: RouteType_GET,
	})

	tempRoutes = append(tempRoutes, &Route{
		Name: "Get Device",
		Path: "/devices/{deviceid}",
		JWT:  true,
		Func: func(ctx iris.Context) error {
			ctx.ContentType("application/json")
			t := GetClaims(ctx)
			_, err := t.GetUser(r.DB)
			if err != nil {
				ctx.StatusCode(http.StatusUnauthorized)
				return nil
			}

			dID, err := primitive.ObjectIDFromHex(ctx.Params().Get("deviceid"))
			if err != nil {
				ctx.StatusCode(http.StatusBadRequest)
				return nil
			}

			d := device.Device{ID: dID}
			err = d.Get(r.DB)
			if errors.Is(err, device.ErrDeviceNotFound) {
				ctx.StatusCode(http.StatusNotFound)
				return nil
			}
			if err != nil {
				ctx.StatusCode(http.StatusInternalServerError)
				return nil
			}

			return ctx.JSON(d)
		},
		Type: RouteType_GET,
	})

	tempRoutes = append(tempRoutes, &Route{
		Name: "New Device",
		Path: "/devices/new",
		JWT:  true,
		Func: func(ctx iris.Context) error {
			ctx.ContentType("application/json")
			t := GetClaims(ctx)
			user, err := t.GetUser(r.DB)
			if err != nil || !user.Admin {
				ctx.StatusCode(http.StatusUnauthorized)
				return nil
			}

			var body deviceBody
			raw, err := ctx.GetBody()
			if err != nil {
				ctx.StatusCode(http.StatusBadRequest)
				return nil
			}
			err = json.Unmarshal(raw, &body)
			if err != nil || body.Name == "" || !device.ValidIPAddress(body.IPAddress) {
				ctx.StatusCode(http.StatusBadRequest)
				return nil
			}

			// status always starts unknown; only the monitor moves it
			d := device.Device{
				Name:        body.Name,
				IPAddress:   body.IPAddress,
				MACAddress:  body.MACAddress,
				Description: body.Description,
			}
			err = d.Create(r.DB)
			if err != nil {
				ctx.StatusCode(http.StatusInternalServerError)
				return nil
			}

			return ctx.JSON(d)
		},
		Type: RouteType_POST,
	})

	tempRoutes = append(tempRoutes, &Route{
		Name: "Update Device",
		Path: "/devices/update/{deviceid}",
		JWT:  true,
		Func: func(ctx iris.Context) error {
			ctx.ContentType("application/json")
			t := GetClaims(ctx)
			user, err := t.GetUser(r.DB)
			if err != nil || !user.Admin {
				ctx.StatusCode(http.StatusUnauthorized)
				return nil
			}

			dID, err := primitive.ObjectIDFromHex(ctx.Params().Get("deviceid"))
			if err != nil {
				ctx.StatusCode(http.StatusBadRequest)
				return nil
			}

			var body deviceBody
			raw, err := ctx.GetBody()
			if err != nil {
				ctx.StatusCode(http.StatusBadRequest)
				return nil
			}
			err = json.Unmarshal(raw, &body)
			if err != nil || body.Name == "" || !device.ValidIPAddress(body.IPAddress) {
				ctx.StatusCode(http.StatusBadRequest)
				return nil
			}

			d := device.Device{ID: dID}
			err = d.UpdateDetails(r.DB, body.Name, body.IPAddress, body.MACAddress, body.Description)
			if errors.Is(err, device.ErrDeviceNotFound) {
				ctx.StatusCode(http.StatusNotFound)
				return nil
			}
			if err != nil {
				ctx.StatusCode(http.StatusInternalServerError)
				return nil
			}

			return ctx.JSON(d)
		},
		Type: RouteType_POST,
	})

	tempRoutes = append(tempRoutes, &Route{
		Name: "Delete Device",
		Path: "/devices/{deviceid}",
		JWT:  true,
		Func: func(ctx iris.Context) error {
			t := GetClaims(ctx)
			user, err := t.GetUser(r.DB)
			if err != nil || !user.Admin {
				ctx.StatusCode(http.StatusUnauthorized)
				return nil
			}

			dID, err := primitive.ObjectIDFromHex(ctx.Params().Get("deviceid"))
			if err != nil {
				ctx.StatusCode(http.StatusBadRequest)
				return nil
			}

			err = device.DeleteDevice(r.DB, dID)
			if err != nil {
				ctx.StatusCode(http.StatusInternalServerError)
				return nil
			}

			ctx.StatusCode(http.StatusOK)
			return nil
		},
		Type: RouteType_DELETE,
	})

	tempRoutes = append(tempRoutes, &Route{
		Name: "Refresh Devices",
		Path: "/devices/refresh",
		JWT:  true,
		Func: func(ctx iris.Context) error {
			t := GetClaims(ctx)
			_, err := t.GetUser(r.DB)
			if err != nil {
				ctx.StatusCode(http.StatusUnauthorized)
				return nil
			}

			// dropped silently if a pass is already in flight
			r.Monitor.RequestPass()

			ctx.StatusCode(http.StatusAccepted)
			return nil
		},
		Type: RouteType_POST,
	})

	return tempRoutes
}
