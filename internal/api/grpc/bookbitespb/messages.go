package bookbitespb

import (
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"
)

// Field names shared by client and server.
const (
	FieldKind        = "kind"
	FieldMemberID    = "member_id"
	FieldPhone       = "phone"
	FieldPassword    = "password"
	FieldName        = "name"
	FieldAvatar      = "avatar"
	FieldUserID      = "user_id"
	FieldAccessToken = "access_token"
	FieldPlan        = "plan"
	FieldType        = "type"
	FieldEmail       = "email"
	FieldID          = "id"
	FieldTitle       = "title"
	FieldAuthor      = "author"
	FieldCoverURL    = "cover_url"
	FieldRating      = "rating"
	FieldIsPremium   = "is_premium"
)

// MemberRequest addresses one member of one collection.
type MemberRequest struct {
	Kind     string
	MemberID string
}

// LoginRequest carries phone/password credentials.
type LoginRequest struct {
	Phone    string
	Password string
}

// SignUpRequest registers a new reader.
type SignUpRequest struct {
	Phone    string
	Password string
	Name     string
	Avatar   string
}

// LoginResponse is returned by Login and SignUp.
type LoginResponse struct {
	UserID      string
	Name        string
	Phone       string
	Email       string
	Avatar      string
	Type        string
	Plan        string
	AccessToken string
}

// Book is a catalog entry on the wire.
type Book struct {
	ID        string
	Title     string
	Author    string
	CoverURL  string
	Rating    float64
	IsPremium bool
}

func NewKindRequest(kind string) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		FieldKind: structpb.NewStringValue(kind),
	}}
}

func ParseKindRequest(s *structpb.Struct) (string, error) {
	return requiredString(s, FieldKind)
}

func (r MemberRequest) Struct() *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		FieldKind:     structpb.NewStringValue(r.Kind),
		FieldMemberID: structpb.NewStringValue(r.MemberID),
	}}
}

func ParseMemberRequest(s *structpb.Struct) (MemberRequest, error) {
	kind, err := requiredString(s, FieldKind)
	if err != nil {
		return MemberRequest{}, err
	}
	member, err := requiredString(s, FieldMemberID)
	if err != nil {
		return MemberRequest{}, err
	}
	return MemberRequest{Kind: kind, MemberID: member}, nil
}

func (r LoginRequest) Struct() *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		FieldPhone:    structpb.NewStringValue(r.Phone),
		FieldPassword: structpb.NewStringValue(r.Password),
	}}
}

func ParseLoginRequest(s *structpb.Struct) (LoginRequest, error) {
	phone, err := requiredString(s, FieldPhone)
	if err != nil {
		return LoginRequest{}, err
	}
	password, err := requiredString(s, FieldPassword)
	if err != nil {
		return LoginRequest{}, err
	}
	return LoginRequest{Phone: phone, Password: password}, nil
}

func (r SignUpRequest) Struct() *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		FieldPhone:    structpb.NewStringValue(r.Phone),
		FieldPassword: structpb.NewStringValue(r.Password),
		FieldName:     structpb.NewStringValue(r.Name),
		FieldAvatar:   structpb.NewStringValue(r.Avatar),
	}}
}

func ParseSignUpRequest(s *structpb.Struct) (SignUpRequest, error) {
	login, err := ParseLoginRequest(s)
	if err != nil {
		return SignUpRequest{}, err
	}
	name, err := requiredString(s, FieldName)
	if err != nil {
		return SignUpRequest{}, err
	}
	return SignUpRequest{
		Phone:    login.Phone,
		Password: login.Password,
		Name:     name,
		Avatar:   optionalString(s, FieldAvatar),
	}, nil
}

func (r LoginResponse) Struct() *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		FieldUserID:      structpb.NewStringValue(r.UserID),
		FieldName:        structpb.NewStringValue(r.Name),
		FieldPhone:       structpb.NewStringValue(r.Phone),
		FieldEmail:       structpb.NewStringValue(r.Email),
		FieldAvatar:      structpb.NewStringValue(r.Avatar),
		FieldType:        structpb.NewStringValue(r.Type),
		FieldPlan:        structpb.NewStringValue(r.Plan),
		FieldAccessToken: structpb.NewStringValue(r.AccessToken),
	}}
}

func ParseLoginResponse(s *structpb.Struct) (LoginResponse, error) {
	userID, err := requiredString(s, FieldUserID)
	if err != nil {
		return LoginResponse{}, err
	}
	token, err := requiredString(s, FieldAccessToken)
	if err != nil {
		return LoginResponse{}, err
	}
	return LoginResponse{
		UserID:      userID,
		Name:        optionalString(s, FieldName),
		Phone:       optionalString(s, FieldPhone),
		Email:       optionalString(s, FieldEmail),
		Avatar:      optionalString(s, FieldAvatar),
		Type:        optionalString(s, FieldType),
		Plan:        optionalString(s, FieldPlan),
		AccessToken: token,
	}, nil
}

func (b Book) Struct() *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		FieldID:        structpb.NewStringValue(b.ID),
		FieldTitle:     structpb.NewStringValue(b.Title),
		FieldAuthor:    structpb.NewStringValue(b.Author),
		FieldCoverURL:  structpb.NewStringValue(b.CoverURL),
		FieldRating:    structpb.NewNumberValue(b.Rating),
		FieldIsPremium: structpb.NewBoolValue(b.IsPremium),
	}}
}

func ParseBook(s *structpb.Struct) (Book, error) {
	id, err := requiredString(s, FieldID)
	if err != nil {
		return Book{}, err
	}
	return Book{
		ID:        id,
		Title:     optionalString(s, FieldTitle),
		Author:    optionalString(s, FieldAuthor),
		CoverURL:  optionalString(s, FieldCoverURL),
		Rating:    s.GetFields()[FieldRating].GetNumberValue(),
		IsPremium: s.GetFields()[FieldIsPremium].GetBoolValue(),
	}, nil
}

// StringList encodes ids as a list of string values.
func StringList(ids []string) *structpb.ListValue {
	values := make([]*structpb.Value, 0, len(ids))
	for _, id := range ids {
		values = append(values, structpb.NewStringValue(id))
	}
	return &structpb.ListValue{Values: values}
}

// ParseStringList decodes a list produced by StringList.
func ParseStringList(l *structpb.ListValue) ([]string, error) {
	out := make([]string, 0, len(l.GetValues()))
	for i, v := range l.GetValues() {
		s, ok := v.GetKind().(*structpb.Value_StringValue)
		if !ok {
			return nil, fmt.Errorf("item %d is not a string", i)
		}
		out = append(out, s.StringValue)
	}
	return out, nil
}

// BookList encodes books as a list of struct values.
func BookList(books []Book) *structpb.ListValue {
	values := make([]*structpb.Value, 0, len(books))
	for _, b := range books {
		values = append(values, structpb.NewStructValue(b.Struct()))
	}
	return &structpb.ListValue{Values: values}
}

// ParseBookList decodes a list produced by BookList.
func ParseBookList(l *structpb.ListValue) ([]Book, error) {
	out := make([]Book, 0, len(l.GetValues()))
	for i, v := range l.GetValues() {
		s := v.GetStructValue()
		if s == nil {
			return nil, fmt.Errorf("item %d is not a struct", i)
		}
		b, err := ParseBook(s)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		out = append(out, b)
	}
	return out, nil
}

func requiredString(s *structpb.Struct, field string) (string, error) {
	v := optionalString(s, field)
	if v == "" {
		return "", fmt.Errorf("field %q is required", field)
	}
	return v, nil
}

func optionalString(s *structpb.Struct, field string) string {
	return s.GetFields()[field].GetStringValue()
}
