// Package errors provides coded errors for rpg-dungeon.
//
// Every error carries a Code, a user-facing message, an optional cause and
// metadata. Codes survive wrapping and map onto gRPC status codes at the
// handler boundary.
//
// # Usage
//
//	err := errors.NotFound("run not found").WithMeta(errors.MetaRunID, id)
//
//	if err := repo.Get(ctx, input); err != nil {
//	    return errors.Wrap(err, "failed to load run")
//	}
//
// # Codes used by the dungeon packages
//
//   - InvalidArgument: bad input, including generator configurations that can
//     never succeed. Carries validation_errors meta from ValidationBuilder.
//   - ResourceExhausted: the generator ran out of attempts.
//   - FailedPrecondition: a door is locked or the run is no longer active.
//   - PermissionDenied: a door leads into the boss room from anywhere other
//     than the prepare room.
//   - NotFound / AlreadyExists: repository lookups.
//
// # Validation
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRange("radius", cfg.Radius, 1, 32, vb)
//	errors.ValidateFraction("variation_chance", cfg.VariationChance, vb)
//	if err := vb.Build(); err != nil {
//	    return err
//	}
//
// # gRPC
//
//	if err != nil {
//	    return nil, errors.ToGRPCError(err)
//	}
//
// ToGRPCError attaches code, message and meta as a google.protobuf.Struct
// status detail which FromGRPCError reads back on the client side.
package errors
