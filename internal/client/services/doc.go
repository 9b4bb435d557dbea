// Package services contains the per-resource call sets of the campaign
// client. Each service turns typed arguments into a path, a method and a
// body, runs the call through a client.Doer, and decodes the result into
// the models types.
//
// Campaign-scoped resources share Collection, which covers list, get,
// create, update and delete under /campaigns/{cid}/{resource}. The
// resource-specific services add the extra endpoints (NPC relationships,
// type templates, idea conversion, session duplication).
//
// AuthService additionally drives the authstate.Container: a successful
// login stores the session, and a profile refresh updates the user.
package services
