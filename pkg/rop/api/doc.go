// Package api runs request chains over rop results: issue a call, check the
// HTTP status, decode the body, validate it with a check gate and extract a
// field. Every chain ends in exactly one of a success or failure callback
// followed by a done callback.
//
//	process := api.ProcessReturnData(client.Get("/items/5"),
//		func(data any) { ... },
//		func(err error) { ... },
//		func() { ... })
//	process(ctx, nil)
//
// There is no retry and no timeout at this layer; a timeout belongs to the
// APICall, for example through the Client's configured http timeout.
package api
