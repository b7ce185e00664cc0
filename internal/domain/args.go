package domain

import (
	"fmt"
	"math/big"
	"reflect"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// ParseConstructorArgs converts command line values into the Go values the ABI
// packer expects for each constructor input.
func ParseConstructorArgs(inputs abi.Arguments, values []string) ([]any, error) {
	if len(values) != len(inputs) {
		return nil, fmt.Errorf("%w: constructor expects %d argument(s), got %d",
			ErrInvalidArgument, len(inputs), len(values))
	}

	args := make([]any, 0, len(values))
	for i, input := range inputs {
		v, err := parseArg(input.Type, strings.TrimSpace(values[i]))
		if err != nil {
			name := input.Name
			if name == "" {
				name = fmt.Sprintf("#%d", i)
			}
			return nil, fmt.Errorf("%w: %s (%s): %v", ErrInvalidArgument, name, input.Type.String(), err)
		}
		args = append(args, v)
	}
	return args, nil
}

func parseArg(t abi.Type, raw string) (any, error) {
	switch t.T {
	case abi.AddressTy:
		if !common.IsHexAddress(raw) {
			return nil, fmt.Errorf("not a hex address: %q", raw)
		}
		return common.HexToAddress(raw), nil

	case abi.BoolTy:
		return strconv.ParseBool(raw)

	case abi.StringTy:
		return raw, nil

	case abi.BytesTy:
		return hexutil.Decode(raw)

	case abi.FixedBytesTy:
		b, err := hexutil.Decode(raw)
		if err != nil {
			return nil, err
		}
		if len(b) > t.Size {
			return nil, fmt.Errorf("value is %d bytes, type holds %d", len(b), t.Size)
		}
		arr := reflect.New(t.GetType()).Elem()
		reflect.Copy(arr, reflect.ValueOf(b))
		return arr.Interface(), nil

	case abi.IntTy, abi.UintTy:
		return parseInteger(t, raw)

	default:
		return nil, fmt.Errorf("unsupported constructor argument type %s", t.String())
	}
}

func parseInteger(t abi.Type, raw string) (any, error) {
	n, ok := new(big.Int).SetString(raw, 0)
	if !ok {
		return nil, fmt.Errorf("not an integer: %q", raw)
	}

	lower, upper := integerBounds(t.T == abi.UintTy, t.Size)
	if n.Cmp(lower) < 0 || n.Cmp(upper) > 0 {
		return nil, fmt.Errorf("value out of range for %s", t.String())
	}

	switch t.GetType().Kind() {
	case reflect.Uint8:
		return uint8(n.Uint64()), nil
	case reflect.Uint16:
		return uint16(n.Uint64()), nil
	case reflect.Uint32:
		return uint32(n.Uint64()), nil
	case reflect.Uint64:
		return n.Uint64(), nil
	case reflect.Int8:
		return int8(n.Int64()), nil
	case reflect.Int16:
		return int16(n.Int64()), nil
	case reflect.Int32:
		return int32(n.Int64()), nil
	case reflect.Int64:
		return n.Int64(), nil
	default:
		return n, nil
	}
}

// integerBounds returns the inclusive range of an ABI integer of the given width
func integerBounds(unsigned bool, size int) (*big.Int, *big.Int) {
	one := big.NewInt(1)
	if unsigned {
		upper := new(big.Int).Sub(new(big.Int).Lsh(one, uint(size)), one)
		return new(big.Int), upper
	}
	half := new(big.Int).Lsh(one, uint(size-1))
	return new(big.Int).Neg(half), new(big.Int).Sub(half, one)
}
