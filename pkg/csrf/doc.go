// Package csrf binds a synchronizer token to the lazy session tier.
//
// The token is stored under "csrf_token" in the anonymous lazy session, so
// it survives login and logout of the main session. Forms embed it in the
// csrf_token field; scripts send it in the X-CSRF-Token header.
//
//	guard, err := csrf.New(ctx, sess)
//	if err != nil {
//		return err
//	}
//	form.Token = guard.Token()
//
// Middleware rejects POST, PUT, PATCH and DELETE requests whose token does
// not match with 403 Forbidden.
package csrf
