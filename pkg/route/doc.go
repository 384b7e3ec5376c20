// Package route parses route strings into actions and resolves them to
// controllers.
//
// A route such as "account/login.submit" addresses the method "submit" of
// the controller "account/login". Routes without a dot address "index".
// Methods starting with "__" are reserved and never invoked.
//
// Controllers are looked up in an explicit table built at startup. Each
// entry is registered either for one application or as a shared fallback:
//
//	resolver := route.NewResolver()
//	resolver.MustRegister("", "common/home", controllers.NewHome)
//	resolver.MustRegister("admin", "common/home", admin.NewHome)
//
// A controller method returns a Result, a tagged variant that is either a
// final Output, a Redispatch to another Action or a Failure:
//
//	func submit(ctx context.Context, sc *service.Container, args *route.Args) route.Result {
//		if !loggedIn(sc) {
//			return route.Redispatch(route.Parse("account/login"))
//		}
//		return route.Render(route.HTML(http.StatusOK, "ok"))
//	}
package route
