package cpu

import (
	"fmt"

	"github.com/thelolagemann/gbcore/pkg/utils"
)

// cbOperations are the read-modify-write operations of 0xCB00 - 0xCB3F,
// in opcode order.
var cbOperations = [8]struct {
	name string
	fn   func(*CPU, uint8) uint8
}{
	{"RLC", (*CPU).rotateLeftCarry},
	{"RRC", (*CPU).rotateRightCarry},
	{"RL", (*CPU).rotateLeft},
	{"RR", (*CPU).rotateRight},
	{"SLA", (*CPU).shiftLeftArithmetic},
	{"SRA", (*CPU).shiftRightArithmetic},
	{"SWAP", (*CPU).swap},
	{"SRL", (*CPU).shiftRightLogical},
}

func init() {
	for i := registerIndex(0); i < 8; i++ {
		index := i
		for o, op := range cbOperations {
			fn := op.fn
			DefineInstructionCB(uint8(o)<<3+index, op.name+" "+registerNames[index], func(c *CPU) {
				c.writeIndex(index, fn(c, c.readIndex(index)))
			})
		}

		for b := uint8(0); b < 8; b++ {
			bit := b
			DefineInstructionCB(0x40+bit<<3+index, fmt.Sprintf("BIT %d, %s", bit, registerNames[index]), func(c *CPU) {
				c.testBit(bit, c.readIndex(index))
			})
			DefineInstructionCB(0x80+bit<<3+index, fmt.Sprintf("RES %d, %s", bit, registerNames[index]), func(c *CPU) {
				c.writeIndex(index, utils.ClearBit(c.readIndex(index), bit))
			})
			DefineInstructionCB(0xC0+bit<<3+index, fmt.Sprintf("SET %d, %s", bit, registerNames[index]), func(c *CPU) {
				c.writeIndex(index, utils.SetBit(c.readIndex(index), bit))
			})
		}
	}
}
