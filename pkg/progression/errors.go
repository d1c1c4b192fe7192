// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package progression

import "errors"

var (
	// ErrNoSession is returned when a player has no session on the current puzzle.
	ErrNoSession = errors.New("no active session")

	// ErrInvalidPlayer is returned for an empty player id.
	ErrInvalidPlayer = errors.New("player id is required")

	// ErrPuzzleFinished is returned when starting a session on a puzzle the player already finished.
	ErrPuzzleFinished = errors.New("puzzle already finished")

	// ErrInvalidWallet is returned for an empty wallet address.
	ErrInvalidWallet = errors.New("wallet address is required")
)
