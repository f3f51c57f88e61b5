package dto

import (
	"errors"
	"time"

	"github.com/jinzhu/copier"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var errConvert = errors.New("dto: unexpected source type")

// copyOption 模型与 DTO 之间的转换：日期 <-> "2006-01-02"，ObjectID -> hex
var copyOption = copier.Option{
	Converters: []copier.TypeConverter{
		{
			SrcType: time.Time{},
			DstType: copier.String,
			Fn: func(src interface{}) (interface{}, error) {
				t, ok := src.(time.Time)
				if !ok {
					return nil, errConvert
				}
				if t.IsZero() {
					return "", nil
				}
				return t.UTC().Format(time.DateOnly), nil
			},
		},
		{
			SrcType: copier.String,
			DstType: time.Time{},
			Fn: func(src interface{}) (interface{}, error) {
				s, ok := src.(string)
				if !ok {
					return nil, errConvert
				}
				if s == "" {
					return time.Time{}, nil
				}
				return time.Parse(time.DateOnly, s)
			},
		},
		{
			SrcType: primitive.ObjectID{},
			DstType: copier.String,
			Fn: func(src interface{}) (interface{}, error) {
				id, ok := src.(primitive.ObjectID)
				if !ok {
					return nil, errConvert
				}
				if id.IsZero() {
					return "", nil
				}
				return id.Hex(), nil
			},
		},
	},
}

// Copy 按字段名复制，日期与 ObjectID 按 copyOption 转换
func Copy(to, from interface{}) error {
	return copier.CopyWithOption(to, from, copyOption)
}
