package codec

import (
	"fmt"
	"time"

	savedatafb "github.com/cbodonnell/savestate/flatbuffers/savedata"
	"github.com/cbodonnell/savestate/pkg/ident"
	"github.com/cbodonnell/savestate/pkg/slot"
	"github.com/cbodonnell/savestate/pkg/variant"
	flatbuffers "github.com/google/flatbuffers/go"
	"github.com/klauspost/compress/zstd"
)

// FlatbuffersCodec encodes documents as a savedata.GameSlot flatbuffer
// compressed with zstd.
type FlatbuffersCodec struct {
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

func NewFlatbuffersCodec() (*FlatbuffersCodec, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd writer: %v", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd reader: %v", err)
	}
	return &FlatbuffersCodec{
		encoder: encoder,
		decoder: decoder,
	}, nil
}

func (c *FlatbuffersCodec) Format() string {
	return FormatFlatbuffers
}

func (c *FlatbuffersCodec) Encode(doc slot.Document) ([]byte, error) {
	b, err := SerializeGameSlotFlatbuffer(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize slot: %w", err)
	}
	return c.encoder.EncodeAll(b, nil), nil
}

func (c *FlatbuffersCodec) Decode(b []byte) (slot.Document, error) {
	decompressed, err := c.decoder.DecodeAll(b, nil)
	if err != nil {
		return slot.Document{}, fmt.Errorf("failed to decompress slot: %w", err)
	}
	doc, err := DeserializeGameSlotFlatbuffer(decompressed)
	if err != nil {
		return slot.Document{}, fmt.Errorf("failed to deserialize slot: %w", err)
	}
	return doc, nil
}

func SerializeGameSlotFlatbuffer(doc slot.Document) ([]byte, error) {
	builder := flatbuffers.NewBuilder(0)

	variableOffsets := make([]flatbuffers.UOffsetT, 0, len(doc.Variables))
	for _, v := range doc.Variables {
		offset, err := SerializeSavedVariableFlatbuffer(builder, v)
		if err != nil {
			return nil, err
		}
		variableOffsets = append(variableOffsets, offset)
	}
	savedatafb.GameSlotStartVariablesVector(builder, len(variableOffsets))
	for i := len(variableOffsets) - 1; i >= 0; i-- {
		builder.PrependUOffsetT(variableOffsets[i])
	}
	variables := builder.EndVector(len(variableOffsets))

	prettyName := builder.CreateString(doc.PrettyName)

	var savedAt int64
	if !doc.SavedAt.IsZero() {
		savedAt = doc.SavedAt.UnixNano()
	}

	savedatafb.GameSlotStart(builder)
	savedatafb.GameSlotAddId(builder, int64(doc.ID))
	savedatafb.GameSlotAddPrettyName(builder, prettyName)
	savedatafb.GameSlotAddSavedAt(builder, savedAt)
	savedatafb.GameSlotAddVersion(builder, int32(doc.Version))
	savedatafb.GameSlotAddVariables(builder, variables)
	gameSlot := savedatafb.GameSlotEnd(builder)
	builder.Finish(gameSlot)

	return builder.FinishedBytes(), nil
}

func SerializeSavedVariableFlatbuffer(builder *flatbuffers.Builder, v slot.SavedVariable) (flatbuffers.UOffsetT, error) {
	value, err := v.Container.Variant().MarshalBinary()
	if err != nil {
		return 0, fmt.Errorf("failed to encode %s: %w", v.Key(), err)
	}

	owner := builder.CreateByteVector(v.Owner[:])
	name := builder.CreateString(v.Name)
	valueOffset := builder.CreateByteVector(value)

	savedatafb.SavedVariableStart(builder)
	savedatafb.SavedVariableAddOwner(builder, owner)
	savedatafb.SavedVariableAddName(builder, name)
	savedatafb.SavedVariableAddKind(builder, byte(v.Container.Kind()))
	savedatafb.SavedVariableAddValue(builder, valueOffset)
	return savedatafb.SavedVariableEnd(builder), nil
}

// DeserializeGameSlotFlatbuffer reads a savedata.GameSlot. The Go runtime
// has no flatbuffer verifier, so out-of-bounds reads on malformed input are
// recovered and returned as errors.
func DeserializeGameSlotFlatbuffer(b []byte) (doc slot.Document, err error) {
	if len(b) < flatbuffers.SizeUOffsetT {
		return slot.Document{}, fmt.Errorf("buffer too short: %d bytes", len(b))
	}
	defer func() {
		if r := recover(); r != nil {
			doc, err = slot.Document{}, fmt.Errorf("malformed slot buffer: %v", r)
		}
	}()

	gameSlotFlatbuffer := savedatafb.GetRootAsGameSlot(b, 0)
	doc.ID = int(gameSlotFlatbuffer.Id())
	doc.PrettyName = string(gameSlotFlatbuffer.PrettyName())
	if savedAt := gameSlotFlatbuffer.SavedAt(); savedAt != 0 {
		doc.SavedAt = time.Unix(0, savedAt).UTC()
	}
	doc.Version = int(gameSlotFlatbuffer.Version())

	doc.Variables = make([]slot.SavedVariable, 0, gameSlotFlatbuffer.VariablesLength())
	for i := 0; i < gameSlotFlatbuffer.VariablesLength(); i++ {
		variableFlatbuffer := &savedatafb.SavedVariable{}
		if !gameSlotFlatbuffer.Variables(variableFlatbuffer, i) {
			return slot.Document{}, fmt.Errorf("failed to get saved variable at index %d", i)
		}
		v, err := SavedVariableFlatbufferToSavedVariable(variableFlatbuffer)
		if err != nil {
			return slot.Document{}, fmt.Errorf("saved variable at index %d: %w", i, err)
		}
		doc.Variables = append(doc.Variables, v)
	}

	return doc, nil
}

func SavedVariableFlatbufferToSavedVariable(fb *savedatafb.SavedVariable) (slot.SavedVariable, error) {
	owner, err := ident.FromBytes(fb.OwnerBytes())
	if err != nil {
		return slot.SavedVariable{}, err
	}
	name := string(fb.Name())

	var value variant.Variant
	if err := value.UnmarshalBinary(fb.ValueBytes()); err != nil {
		return slot.SavedVariable{}, err
	}
	container, err := variant.NewContainer(name, variant.Kind(fb.Kind()), value)
	if err != nil {
		return slot.SavedVariable{}, err
	}

	return slot.NewSavedVariable(owner, name, container), nil
}
