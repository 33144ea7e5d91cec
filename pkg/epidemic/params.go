package epidemic

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/rmt1947/cov-swn/pkg/random"
	"github.com/rmt1947/cov-swn/pkg/smallworld"
	"github.com/rmt1947/cov-swn/pkg/util"
)

// Params is everything one run depends on. Two runs with equal Params produce identical output.
type Params struct {
	SeedCov    uint32  `name:"seedcov"`
	SeedSwn    uint32  `name:"seedswn"`
	ManyNode   int     `name:"manynode" validate:"gt=0"`
	HalfDegree int     `name:"halfdegree" validate:"gt=0"`
	Beta       float64 `name:"beta" validate:"gte=0,lt=1"`
	Chance     float64 `name:"chance" validate:"gte=0,lte=1"`
	Inert      float64 `name:"inert" validate:"gte=0,lte=1"`
	Incubating int     `name:"incubating" validate:"gte=0"`
	Recovery   int     `name:"recovery" validate:"gtfield=Incubating"`
}

// Thresholds are the quantized probabilities the simulator compares draws against.
type Thresholds struct {
	Beta   random.Threshold
	Chance random.Threshold
	Inert  random.Threshold
}

func (p Params) Network() smallworld.Config {
	return smallworld.Config{
		NumberOfVertices: p.ManyNode,
		HalfDegree:       p.HalfDegree,
		Beta:             p.Beta,
	}
}

// Validate checks every range and cross-field rule and returns a single ErrBadParamInput
// error listing all violations in plain English.
func (p Params) Validate() error {
	validate, trans := paramsValidator()
	if err := validate.Struct(p); err != nil {
		vv := translateError(err, trans)
		vvString := []string{}
		for _, v := range vv {
			vvString = append(vvString, v.Error())
		}
		return util.WrapErrorf(nil, util.ErrBadParamInput, "validation error: %s", strings.Join(vvString, "; "))
	}
	if _, err := p.Quantize(); err != nil {
		return err
	}
	return nil
}

func (p Params) Quantize() (Thresholds, error) {
	var (
		th  Thresholds
		err error
	)
	if th.Beta, err = random.Quantize(p.Beta); err != nil {
		return th, err
	}
	if th.Chance, err = random.Quantize(p.Chance); err != nil {
		return th, err
	}
	if th.Inert, err = random.Quantize(p.Inert); err != nil {
		return th, err
	}
	return th, nil
}

// paramsValidator is shared by every Validate call; both values are safe for concurrent use.
var paramsValidator = sync.OnceValues(newValidator)

func newValidator() (*validator.Validate, ut.Translator) {
	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")

	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if name := fld.Tag.Get("name"); name != "" {
			return name
		}
		return fld.Name
	})
	_ = enTranslations.RegisterDefaultTranslations(validate, trans)

	validate.RegisterStructValidation(ringStructLevel, Params{})
	_ = validate.RegisterTranslation("ring", trans,
		func(ut ut.Translator) error {
			return ut.Add("ring", "{0} must exceed twice the halfdegree ({1})", true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			t, _ := ut.T("ring", fe.Field(), fe.Param())
			return t
		})
	return validate, trans
}

// ringStructLevel rejects rings too small to hold 2*halfdegree distinct neighbors per node.
func ringStructLevel(sl validator.StructLevel) {
	p := sl.Current().Interface().(Params)
	if p.HalfDegree > 0 && p.ManyNode <= 2*p.HalfDegree {
		sl.ReportError(p.ManyNode, "manynode", "ManyNode", "ring", fmt.Sprint(2*p.HalfDegree))
	}
}

func translateError(err error, trans ut.Translator) (errs []error) {
	if err == nil {
		return nil
	}
	var validatorErrs validator.ValidationErrors
	if !errors.As(err, &validatorErrs) {
		return []error{err}
	}
	for _, e := range validatorErrs {
		translatedErr := fmt.Errorf("%s", e.Translate(trans))
		errs = append(errs, translatedErr)
	}
	return errs
}
