package ines

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func buildROM(mapperLow, mapperHigh, flags6 uint8, prgBanks, chrBanks uint8) []byte {
	buf := &bytes.Buffer{}
	buf.WriteString("NES\x1A")
	buf.WriteByte(prgBanks)
	buf.WriteByte(chrBanks)
	buf.WriteByte((mapperLow << 4) | flags6)
	buf.WriteByte(mapperHigh << 4)
	buf.Write(make([]byte, 8)) // PRGRAMSize, TVSystem1/2, padding
	buf.Write(make([]byte, int(prgBanks)*16384))
	buf.Write(make([]byte, int(chrBanks)*8192))
	return buf.Bytes()
}

func TestLoadParsesMapperAndSizes(t *testing.T) {
	rom := buildROM(2, 0, 0x01, 1, 1) // mapper 2, vertical mirroring, 16KB PRG, 8KB CHR
	cfg, err := Load(bytes.NewReader(rom))
	require.NoError(t, err)
	require.Equal(t, uint8(2), cfg.MapperID)
	require.Len(t, cfg.PRGROM, 16384)
	require.Len(t, cfg.CHRROM, 8192)
}

func TestLoadRejectsBadMagic(t *testing.T) {
	_, err := Load(bytes.NewReader(make([]byte, 16)))
	require.Error(t, err)
}

func TestLoadRejectsZeroPRG(t *testing.T) {
	rom := buildROM(0, 0, 0, 0, 0)
	_, err := Load(bytes.NewReader(rom))
	require.Error(t, err)
}

func TestLoadSkipsTrainer(t *testing.T) {
	rom := buildROM(0, 0, 0x04, 1, 0) // flags6 bit 2: has trainer
	buf := &bytes.Buffer{}
	buf.Write(rom[:16])
	buf.Write(make([]byte, 512)) // trainer
	buf.Write(make([]byte, 16384))
	cfg, err := Load(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Len(t, cfg.PRGROM, 16384)
}
