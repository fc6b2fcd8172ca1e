/*
Package socialsdk is a Go client for the hellosocial JSON API.

# SDKClient vs Session

  - SDKClient: unauthenticated operations such as health checks
  - Session: operations on behalf of a signed-in identity

Sessions are created through the browser sign-in flow; the SDK only carries
the resulting session cookie:

	client := socialsdk.NewSDKClient("https://hello.example.com")

	health, err := client.GetReadiness(ctx)

	session := client.NewSession(cookieValue)
	me, err := session.Me(ctx)
	me, err = session.UpdateFavorite(ctx, me.ID, "Green")
	post, err := session.Share(ctx, me.Provider, "My favorite color is Green!")

# Errors

Every non-success response is returned as *httpx.Error carrying the HTTP
status and the error code from the body:

	_, err := session.Share(ctx, "facebook", "hi")
	if socialsdk.IsProviderMismatch(err) {
		// signed in with another network
	}
*/
package socialsdk
