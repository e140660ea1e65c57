package game

// slideLeft shifts and merges every row of b towards column 0 in place and
// returns the reward: the sum of the values of all tiles created by merges.
// A tile takes part in at most one merge per move.
func slideLeft(b *Board) int {
	reward := 0

	for r := range BoardSize {
		row := &b[r]
		// Rightmost column already holding a moved tile, -1 if none yet.
		candidate := -1
		var merged [BoardSize]bool

		for c := range BoardSize {
			if row[c] == 0 {
				continue
			}

			if candidate != -1 && !merged[candidate] && row[candidate] == row[c] {
				row[c] = 0
				row[candidate]++
				merged[candidate] = true
				reward += TileValue(row[candidate])
				continue
			}

			candidate++
			if c != candidate {
				row[candidate] = row[c]
				row[c] = 0
			}
		}
	}

	return reward
}

// canSlideLeft reports whether slideLeft would change b: some row has a tile
// with an empty cell to its left, or two adjacent equal tiles.
func canSlideLeft(b *Board) bool {
	for r := range BoardSize {
		hasEmpty := false
		for c := range BoardSize {
			v := b[r][c]
			if v == 0 {
				hasEmpty = true
				continue
			}
			if hasEmpty {
				return true
			}
			if c > 0 && v == b[r][c-1] {
				return true
			}
		}
	}
	return false
}

// Move applies action a to b without spawning and returns the new board and
// reward. It is the pure form of the move performed by Game.DoAction.
func Move(b Board, a Action) (Board, int, error) {
	if err := checkAction(a); err != nil {
		return b, 0, err
	}
	rotated := Rotate(b, int(a))
	reward := slideLeft(&rotated)
	return Rotate(rotated, -int(a)), reward, nil
}

// CanMove reports whether action a would change b.
func CanMove(b Board, a Action) (bool, error) {
	if err := checkAction(a); err != nil {
		return false, err
	}
	rotated := Rotate(b, int(a))
	return canSlideLeft(&rotated), nil
}
