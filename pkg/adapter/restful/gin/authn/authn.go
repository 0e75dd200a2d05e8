// Copyright (c) 2025-2026 DriverMind Ltda.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package authn provides the authentication middleware. Requests must
// carry a bearer token issued by the hosted identity service; the
// middleware resolves it to a user once per request and the resource
// packages read that user from the request context.
package authn

import (
	"net/http"
	"strings"

	"github.com/drivermind/dmweb/pkg/adapter/restful/gin/serdser"
	"github.com/drivermind/dmweb/pkg/core/model"
	"github.com/drivermind/dmweb/pkg/core/usecase/profileuc"
	"github.com/gin-gonic/gin"
)

const userKey = "authn.user"

// Middleware returns a handler which resolves the Authorization
// bearer token through the identity provider and aborts with 401 when
// the header is missing or the token is rejected.
func Middleware(idp profileuc.IdentityProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"detail": "missing bearer token",
			})
			return
		}
		user, err := idp.UserFromToken(c, token)
		if err != nil {
			serdser.SerErr(c, err)
			c.Abort()
			return
		}
		c.Set(userKey, *user)
		c.Next()
	}
}

// User returns the authenticated user as stored by the Middleware.
// It panics if the middleware did not run for this request, since
// calling it from an unauthenticated route is a programming error.
func User(c *gin.Context) model.User {
	return c.MustGet(userKey).(model.User)
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
