package types

// HardwareAddress represents the address of a hardware
// register of the Game Boy. The hardware registers are mapped
// to memory addresses 0xFF00 - 0xFF7F & 0xFFFF.
type HardwareAddress = uint16

const (
	// P1 selects which half of the joypad matrix is
	// read, and returns the state of that half (active low).
	P1 HardwareAddress = 0xFF00
	// SB holds the byte to be shifted out over the serial port.
	SB HardwareAddress = 0xFF01
	// SC controls the serial port.
	//
	//  Bit 7 - Transfer Start Flag (0=No transfer, 1=Start)
	//  Bit 0 - Shift Clock (0=External Clock, 1=Internal Clock)
	SC HardwareAddress = 0xFF02
	// DIV is incremented at a rate of 16384Hz. Writing any
	// value to it resets it to 0.
	DIV HardwareAddress = 0xFF04
	// TIMA is incremented at the rate selected by TAC. When it
	// overflows it is reloaded from TMA and a timer interrupt
	// is requested.
	TIMA HardwareAddress = 0xFF05
	// TMA is loaded into TIMA when it overflows.
	TMA HardwareAddress = 0xFF06
	// TAC controls the timer.
	//
	//  Bit 2   - Timer Enable
	//  Bit 1-0 - Input Clock Select
	//            00: 4096 Hz, 01: 262144 Hz, 10: 65536 Hz, 11: 16384 Hz
	TAC HardwareAddress = 0xFF07
	// IF is used to request interrupts.
	//
	//  Bit 0: V-Blank Interrupt Request (INT 40h)  (1=Request)
	//  Bit 1: LCD STAT Interrupt Request (INT 48h) (1=Request)
	//  Bit 2: Timer Interrupt Request (INT 50h)    (1=Request)
	//  Bit 3: Serial Interrupt Request (INT 58h)   (1=Request)
	//  Bit 4: Joypad Interrupt Request (INT 60h)   (1=Request)
	IF HardwareAddress = 0xFF0F

	// LCDC is the main LCD control register.
	LCDC HardwareAddress = 0xFF40
	// STAT holds the LCD status and the STAT interrupt selection.
	STAT HardwareAddress = 0xFF41
	SCY  HardwareAddress = 0xFF42
	SCX  HardwareAddress = 0xFF43
	// LY indicates the scanline currently being drawn, 0-153.
	// It is read only.
	LY  HardwareAddress = 0xFF44
	LYC HardwareAddress = 0xFF45
	// DMA starts a transfer of 160 bytes from XX00 to OAM.
	DMA  HardwareAddress = 0xFF46
	BGP  HardwareAddress = 0xFF47
	OBP0 HardwareAddress = 0xFF48
	OBP1 HardwareAddress = 0xFF49
	WY   HardwareAddress = 0xFF4A
	WX   HardwareAddress = 0xFF4B

	// KEY1 is the CGB speed switch register. Only the
	// prepare bit is latched, the speed itself never changes.
	KEY1 HardwareAddress = 0xFF4D
	// VBK selects the VRAM bank mapped to 0x8000 - 0x9FFF (CGB).
	VBK HardwareAddress = 0xFF4F
	// BDIS unmaps the boot ROM when written to.
	BDIS HardwareAddress = 0xFF50
	// HDMA1 and HDMA2 hold the source address of a VRAM DMA
	// transfer, HDMA3 and HDMA4 the destination. Writing HDMA5
	// starts the transfer.
	HDMA1 HardwareAddress = 0xFF51
	HDMA2 HardwareAddress = 0xFF52
	HDMA3 HardwareAddress = 0xFF53
	HDMA4 HardwareAddress = 0xFF54
	HDMA5 HardwareAddress = 0xFF55
	// BCPS selects the byte of background palette memory
	// accessed through BCPD. Bit 7 enables auto increment.
	BCPS HardwareAddress = 0xFF68
	BCPD HardwareAddress = 0xFF69
	// OCPS and OCPD are the sprite equivalents of BCPS and BCPD.
	OCPS HardwareAddress = 0xFF6A
	OCPD HardwareAddress = 0xFF6B
	// SVBK selects the WRAM bank mapped to 0xD000 - 0xDFFF (CGB).
	SVBK HardwareAddress = 0xFF70

	// IE is the interrupt enable register, laid out as IF.
	IE HardwareAddress = 0xFFFF
)
