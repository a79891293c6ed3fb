package interpreter

import (
	"fmt"

	"github.com/retroenv/retrochip8/internal/arch/chip8"
	"github.com/retroenv/retrogolib/log"
)

// Step fetches, decodes and executes the instruction at the program counter.
// The program counter is advanced before the instruction executes, so an
// instruction that fails with a recoverable error is skipped. After a fatal
// error every further call returns an error wrapping ErrHalted.
func (ip *Interpreter) Step() error {
	if ip.halted != nil {
		return fmt.Errorf("%w: %w", ErrHalted, ip.halted)
	}

	address := ip.pc
	word := ip.fetch()
	ip.cycles++

	ins, err := chip8.Decode(word)
	if err != nil {
		return &InstructionError{Address: address, Word: word, Err: err}
	}

	if ip.trace {
		ip.executed.Add(address)
		ip.logger.Debug("Executing instruction",
			log.Hex("address", address),
			log.Hex("opcode", word),
			log.String("instruction", chip8.Format(ins)))
	}

	if err := ip.Execute(ins); err != nil {
		err = &InstructionError{Address: address, Word: word, Err: err}
		if IsFatal(err) {
			ip.halted = err
		}
		return err
	}
	return nil
}

// fetch reads the instruction word at the program counter and advances it.
func (ip *Interpreter) fetch() uint16 {
	high := ip.memory[ip.pc&chip8.MaxAddress]
	low := ip.memory[(ip.pc+1)&chip8.MaxAddress]
	ip.pc += chip8.InstructionSize
	return chip8.Word(high, low)
}

// Execute runs a decoded instruction. The program counter is expected to
// already point at the following instruction.
func (ip *Interpreter) Execute(ins chip8.Instruction) error {
	if err := ins.Validate(); err != nil {
		return err
	}

	switch ins.Op {
	case chip8.OpClear:
		ip.screen.Clear()
	case chip8.OpReturn:
		return ip.ret()
	case chip8.OpJump:
		ip.pc = ins.Address
	case chip8.OpCall:
		return ip.call(ins.Address)

	case chip8.OpSkipEqualConst:
		ip.skipIf(ip.V(ins.X) == ins.Byte)
	case chip8.OpSkipNotEqualConst:
		ip.skipIf(ip.V(ins.X) != ins.Byte)
	case chip8.OpSkipEqualReg:
		ip.skipIf(ip.V(ins.X) == ip.V(ins.Y))
	case chip8.OpSkipNotEqual:
		ip.skipIf(ip.V(ins.X) != ip.V(ins.Y))

	case chip8.OpLoadConst:
		ip.set(ins.X, int(ins.Byte))
	case chip8.OpAddConst:
		ip.set(ins.X, int(ip.V(ins.X))+int(ins.Byte))
	case chip8.OpMove, chip8.OpOr, chip8.OpAnd, chip8.OpXor,
		chip8.OpAdd, chip8.OpSub, chip8.OpSubReverse,
		chip8.OpShiftRight, chip8.OpShiftLeft:
		ip.arithmetic(ins)

	case chip8.OpLoadIndex:
		ip.index = ins.Address
	case chip8.OpJumpV0:
		ip.pc = (ins.Address + uint16(ip.V(0))) & chip8.MaxAddress
	case chip8.OpRandom:
		ip.set(ins.X, ip.random.IntN(int(ins.Byte)+1))
	case chip8.OpDraw:
		ip.draw(ins)

	case chip8.OpSkipPressed:
		ip.skipIf(ip.keys.IsPressed(ip.V(ins.X) & 0x0F))
	case chip8.OpSkipNotPressed:
		ip.skipIf(!ip.keys.IsPressed(ip.V(ins.X) & 0x0F))
	case chip8.OpWaitKey:
		key, ok := ip.keys.PressedKey()
		if !ok {
			ip.pc -= chip8.InstructionSize
			return nil
		}
		ip.set(ins.X, int(key))

	case chip8.OpGetDelay:
		ip.set(ins.X, int(ip.delay.Value()))
	case chip8.OpSetDelay:
		ip.delay.Set(ip.V(ins.X))
	case chip8.OpSetSound:
		ip.sound.Set(ip.V(ins.X))

	case chip8.OpAddIndex:
		ip.index += uint16(ip.V(ins.X))
	case chip8.OpFont:
		digit := ip.V(ins.X)
		if digit > 0x0F {
			return &FontError{Value: int(digit)}
		}
		ip.index = chip8.GlyphAddress(digit)
	case chip8.OpStoreBCD:
		value := ip.V(ins.X)
		return ip.store([]byte{value / 100, value / 10 % 10, value % 10})
	case chip8.OpStoreRegs:
		values := make([]byte, 0, int(ins.X)+1)
		for x := range ins.X + 1 {
			values = append(values, ip.V(x))
		}
		return ip.store(values)
	case chip8.OpLoadRegs:
		for x := range ins.X + 1 {
			ip.set(x, int(ip.ReadMemory(ip.index+uint16(x))))
		}

	default:
		return &chip8.OperandError{Op: ins.Op, Detail: "no handler"}
	}
	return nil
}

// arithmetic executes the 8xy_ register to register operations. The flag
// register is written after the result, so VF holds the flag if it is also
// the destination.
func (ip *Interpreter) arithmetic(ins chip8.Instruction) {
	vx := int(ip.V(ins.X))
	vy := int(ip.V(ins.Y))

	switch ins.Op {
	case chip8.OpMove:
		ip.set(ins.X, vy)
	case chip8.OpOr:
		ip.set(ins.X, vx|vy)
	case chip8.OpAnd:
		ip.set(ins.X, vx&vy)
	case chip8.OpXor:
		ip.set(ins.X, vx^vy)
	case chip8.OpAdd:
		_, carry := ip.registers.Write(int(ins.X), vx+vy)
		ip.setFlag(carry)
	case chip8.OpSub:
		_, borrow := ip.registers.Write(int(ins.X), vx-vy)
		ip.setFlag(!borrow)
	case chip8.OpSubReverse:
		_, borrow := ip.registers.Write(int(ins.X), vy-vx)
		ip.setFlag(!borrow)
	case chip8.OpShiftRight:
		source := ip.shiftSource(vx, vy)
		ip.set(ins.X, source>>1)
		ip.setFlag(source&1 == 1)
	case chip8.OpShiftLeft:
		source := ip.shiftSource(vx, vy)
		ip.set(ins.X, source<<1)
		ip.setFlag(source>>(ip.registers.Bits()-1)&1 == 1)
	default:
	}
}

func (ip *Interpreter) shiftSource(vx, vy int) int {
	if ip.quirks.ShiftSourceY {
		return vy
	}
	return vx
}

// draw reads n sprite bytes starting at I and XORs them onto the screen.
func (ip *Interpreter) draw(ins chip8.Instruction) {
	sprite := make([]byte, ins.Nibble)
	for i := range sprite {
		sprite[i] = ip.ReadMemory(ip.index + uint16(i))
	}
	collision := ip.screen.Draw(int(ip.V(ins.X)), int(ip.V(ins.Y)), sprite)
	ip.setFlag(collision)
}

func (ip *Interpreter) call(address uint16) error {
	if len(ip.stack) == chip8.StackDepth {
		return fmt.Errorf("%w: call to $%03X with %d return addresses", ErrStackOverflow, address, len(ip.stack))
	}
	ip.stack = append(ip.stack, ip.pc)
	ip.pc = address
	return nil
}

func (ip *Interpreter) ret() error {
	if len(ip.stack) == 0 {
		return ErrStackUnderflow
	}
	last := len(ip.stack) - 1
	ip.pc = ip.stack[last]
	ip.stack = ip.stack[:last]
	return nil
}

// store writes the values to memory starting at I. The write is refused as a
// whole if any target address is below the program start.
func (ip *Interpreter) store(values []byte) error {
	for i := range values {
		address := (ip.index + uint16(i)) & chip8.MaxAddress
		if address < chip8.ProgramStart {
			return &MemoryError{Address: address}
		}
	}
	for i, value := range values {
		ip.memory[(ip.index+uint16(i))&chip8.MaxAddress] = value
	}
	return nil
}

func (ip *Interpreter) skipIf(condition bool) {
	if condition {
		ip.pc += chip8.InstructionSize
	}
}

func (ip *Interpreter) set(x uint8, value int) {
	ip.registers.Write(int(x), value)
}

func (ip *Interpreter) setFlag(flag bool) {
	value := 0
	if flag {
		value = 1
	}
	ip.registers.Write(chip8.FlagRegister, value)
}
