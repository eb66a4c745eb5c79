package snake

import (
	"reflect"
	"testing"
)

func TestInventoryCapacity(t *testing.T) {
	inv := NewInventory(2)
	if !inv.Add(PowerUpMulligan) || !inv.Add(PowerUpPhaseWalls) {
		t.Fatal("Add() refused below capacity")
	}
	if inv.Add(PowerUpMulligan) {
		t.Error("Add() accepted past capacity")
	}
	if inv.Len() != 2 {
		t.Errorf("Len() = %d", inv.Len())
	}
}

func TestInventorySelection(t *testing.T) {
	inv := NewInventory(5)
	inv.Add(PowerUpMulligan)
	inv.Add(PowerUpPhaseWalls)
	inv.Add(PowerUpMulligan)

	inv.CyclePrev()
	if inv.SelectedIndex() != 2 {
		t.Errorf("CyclePrev() from 0 = %d, expected 2", inv.SelectedIndex())
	}
	inv.CycleNext()
	if inv.SelectedIndex() != 0 {
		t.Errorf("CycleNext() from last = %d, expected 0", inv.SelectedIndex())
	}

	inv.CyclePrev()
	p, ok := inv.UseSelected()
	if !ok || p != PowerUpMulligan {
		t.Fatalf("UseSelected() = %v, %v", p, ok)
	}
	// Cursor clamps to the new last slot
	if inv.SelectedIndex() != 1 {
		t.Errorf("cursor = %d after removing the last slot", inv.SelectedIndex())
	}

	if !inv.ConsumeFirst(PowerUpPhaseWalls) {
		t.Fatal("ConsumeFirst() missed a held token")
	}
	if inv.ConsumeFirst(PowerUpPhaseWalls) {
		t.Error("ConsumeFirst() removed a token that is not held")
	}
	if want := []PowerUp{PowerUpMulligan}; !reflect.DeepEqual(inv.Items(), want) {
		t.Errorf("Items() = %v, expected %v", inv.Items(), want)
	}
	if inv.Count(PowerUpMulligan) != 1 || inv.SelectedIndex() != 0 {
		t.Errorf("count %d cursor %d", inv.Count(PowerUpMulligan), inv.SelectedIndex())
	}

	inv.UseSelected()
	if _, ok := inv.UseSelected(); ok {
		t.Error("UseSelected() on an empty inventory")
	}
}

func TestEffectsCountMoves(t *testing.T) {
	e := NewEffects(3)
	e.ActivatePhase()
	e.OnSuccessfulMove()
	e.OnSuccessfulMove()
	if e.PhaseMoves() != 1 {
		t.Fatalf("PhaseMoves() = %d, expected 1", e.PhaseMoves())
	}

	// Re-activation never shortens, only refills
	e.ActivatePhase()
	if e.PhaseMoves() != 3 {
		t.Errorf("PhaseMoves() = %d after refill", e.PhaseMoves())
	}
	for i := 0; i < 5; i++ {
		e.OnSuccessfulMove()
	}
	if e.PhaseActive() || e.PhaseMoves() != 0 {
		t.Errorf("phase still active with %d moves", e.PhaseMoves())
	}
}

func TestPowerUpGlyphs(t *testing.T) {
	if PowerUpMulligan.Glyph() == PowerUpPhaseWalls.Glyph() {
		t.Error("power-ups share a glyph")
	}
	if PowerUp(99).String() != "?" {
		t.Error("unknown power-up has a name")
	}
}
