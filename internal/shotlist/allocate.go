package shotlist

import (
	"fmt"
	"math"
	"sort"

	"reel/internal/services"
)

const weightTolerance = 1e-9

// ValidateScenes checks ids are unique and weights lie in (0,1] summing to 1.
func ValidateScenes(scenes []Scene) error {
	if len(scenes) == 0 {
		return services.Wrap(services.ErrConfiguration, "shotlist", "scenes", "scene table is empty", nil)
	}
	seen := make(map[string]struct{}, len(scenes))
	sum := 0.0
	for _, s := range scenes {
		if _, dup := seen[s.ID]; dup {
			return services.Wrap(services.ErrConfiguration, "shotlist", "scenes", fmt.Sprintf("duplicate scene %s", s.ID), nil)
		}
		seen[s.ID] = struct{}{}
		if s.Weight <= 0 || s.Weight > 1 {
			return services.Wrap(services.ErrConfiguration, "shotlist", "scenes", fmt.Sprintf("scene %s weight %v outside (0,1]", s.ID, s.Weight), nil)
		}
		sum += s.Weight
	}
	if math.Abs(sum-1) > weightTolerance {
		return services.Wrap(services.ErrConfiguration, "shotlist", "scenes", fmt.Sprintf("scene weights sum to %v, want 1", sum), nil)
	}
	return nil
}

// Allocate splits total shots across scenes proportionally to weight, rounding
// half to even. Any rounding remainder is absorbed by the highest-weight scene
// (the first one on ties), so every other scene keeps its rounded share.
func Allocate(total int, scenes []Scene) []int {
	alloc := make([]int, len(scenes))
	if len(scenes) == 0 {
		return alloc
	}
	sum := 0
	heaviest := 0
	for i, s := range scenes {
		alloc[i] = int(math.RoundToEven(float64(total) * s.Weight))
		sum += alloc[i]
		if s.Weight > scenes[heaviest].Weight {
			heaviest = i
		}
	}
	alloc[heaviest] += total - sum
	return alloc
}

// VideoSlots returns the ascending positions, within a scene of n shots, at
// which k video shots are inserted: round(j*n/(k+1)) for j = 1..k. Positions
// that collide after rounding move to the nearest free slot. At most n slots
// are returned.
func VideoSlots(n, k int) []int {
	if n <= 0 || k <= 0 {
		return nil
	}
	if k > n {
		k = n
	}
	used := make([]bool, n)
	slots := make([]int, 0, k)
	for j := 1; j <= k; j++ {
		pos := int(math.RoundToEven(float64(j*n) / float64(k+1)))
		if pos >= n {
			pos = n - 1
		}
		pos = nearestFree(used, pos)
		used[pos] = true
		slots = append(slots, pos)
	}
	sort.Ints(slots)
	return slots
}

func nearestFree(used []bool, pos int) int {
	for p := pos; p < len(used); p++ {
		if !used[p] {
			return p
		}
	}
	for p := pos - 1; p >= 0; p-- {
		if !used[p] {
			return p
		}
	}
	return pos
}
