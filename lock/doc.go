// Copyright (c) 2025 malek5552.
// Licensed under the MIT License. See LICENSE.

/*
Package lock provides the serialization point around whole-document
read-modify-write sequences.

Every mutation of the schedule loads the full collection, changes it in
memory, and writes it back. Two requests that load before either writes
would lose one update, so callers hold a Locker for the whole sequence:

	release, err := locker.Lock(ctx)
	if err != nil {
		return err
	}
	defer release()

# Implementations

  - Local: in-process mutex (default)
  - Redis: SET NX PX lock with compare-and-delete release, for several
    processes sharing one data store
  - Noop: no serialization; last write wins

Lock returns an error wrapping ErrNotAcquired when ctx ends first.
*/
package lock
